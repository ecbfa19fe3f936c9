// Package render converts engine state into a drawable liquid polygon.
//
// [Render] is a pure function of the node positions, fill fraction, angle
// and viewport. The resulting [Frame] can be drawn as a path ([Frame.World]),
// as GPU triangles ([Frame.Triangles]) or rasterised with [Frame.Contains].
package render
