// SPDX-License-Identifier: EPL-2.0

// Package graph holds the playback graph nodes. Every node is an audio.Source
// pulling from its input, so a device drains the graph from its own goroutine
// by reading the last node:
//
//	main := graph.NewBufferSource(buf, true)
//	router, _ := graph.NewRouter(main)
//	out, _ := graph.NewMixer(graph.NewGain(router), graph.NewGain(alt))
//	player := oto.NewPlayer(graph.NewPCMReader(graph.NewAnalyser(out, 1024)))
//
// State changed from other goroutines (routing, gain targets, playing flags)
// is guarded per node.
package graph
