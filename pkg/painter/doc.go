// Package painter provides stock panel.Painter implementations: the address
// test pattern, PWM dithering of RGBA images and a few helpers for composing
// painters.
//
// Every painter here is a pure function of the coordinate it is given, so
// the same painter works at any driver latency.
package painter
