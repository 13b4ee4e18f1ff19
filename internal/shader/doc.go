// Package shader generates and compiles the metaball ray-marching kernel.
//
// The kernel is WGSL produced from an embedded template. Slot capacities and
// the march step count are fixed at generation time: every slot fold and
// every step is unrolled, and a per-slot count comparison decides whether a
// slot participates. The template receives the same constants the CPU port
// of the kernel uses, so both stay in step.
//
// Compile runs the generated source through naga to obtain SPIR-V. It is
// called once per process by the metaball package.
package shader
