// Package script applies YAML edit scripts to a rope.Text.
//
// A script is a list of steps run in order against a single text:
//
//	steps:
//	  - op: insert
//	    at: 0
//	    text: "header\n"
//	  - op: snapshot
//	    name: with-header
//	  - op: delete
//	    at: 7
//	    count: 3
//	  - op: restore
//	    name: with-header
//
// Positions and counts are in characters (Unicode code points). Out of range
// positions are clamped the same way the rope edit operations clamp them.
package script
