// Package graphlayout computes 2-D layouts of graphs with the ForceAtlas2
// force-directed algorithm.
//
// Each iteration evaluates attraction along edges, repulsion between every
// pair of nodes and gravity, tracks how much the force on every node swings
// between iterations, adapts a global speed from that, and moves the nodes
// within a step envelope that shrinks linearly over the iteration budget.
//
//	m := mat.NewDense(3, 3, []float64{0, 1, 1, 1, 0, 1, 1, 1, 0})
//	res, err := graphlayout.NewEngine().Run(m, nil, &graphlayout.Config{
//		Seed: graphlayout.Int64(1),
//	})
//	// res.Positions is 3 x 2
package graphlayout
