// Package specfile parses YAML connection-spec documents into
// connect.Spec and connect.SynapseSpec values, mirroring the
// dictionary-based spec language of the surrounding ecosystem:
//
//	rule: fixed_indegree
//	indegree: 2
//	mask:
//	  rectangular:
//	    lower_left: [-5.0, -5.0]
//	    upper_right: [0.0, 0.0]
//	p: 0.5
//	allow_autapses: false
//	synapse:
//	  weight:
//	    uniform: {min: 0.5}
//	  delay: 1.0
//
// The scalar shorthand `p` declares a constant kernel; distance kernels
// use the `kernel` mapping with exactly one of constant, linear,
// exponential or gaussian. Synapse parameters accept either a scalar
// literal or a mapping with exactly one of uniform, normal, lognormal
// or exponential.
package specfile
