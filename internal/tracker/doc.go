// Package tracker smooths the two slow inputs of the surface: how full it is
// and which way is down.
package tracker
