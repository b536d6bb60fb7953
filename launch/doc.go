// Package launch describes a set of ROS processes and the arguments that
// parameterise them, and resolves such a description into a concrete plan.
//
// A Description is a plain value: declared arguments plus node descriptors
// whose fields are Substitutions and Conditions. Evaluate performs every
// substitution once against the supplied argument overrides and returns a
// Plan. Nothing in this package starts the described processes.
package launch
