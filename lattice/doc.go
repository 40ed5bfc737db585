// Package lattice models a crystal unit cell: the six lattice parameters and
// the fractional↔orthonormal coordinate transforms derived from them.
//
// The orthonormalization matrix B is upper triangular (a‖x convention), so a
// fractional point p maps to Cartesian Ångströms as B·p and back as B⁻¹·P.
// The triangular shape is relied upon by distance kernels that skip the zero
// entries.
//
// A Cell carries a metric clock (see package clock) that is ticked on every
// Resize, letting downstream caches detect metric changes lazily.
package lattice
