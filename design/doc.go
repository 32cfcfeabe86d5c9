// Package design turns projected genetic functions and environment
// covariates into the regression design used by the estimators.
//
// 🚀 Pipeline:
//
//	C (n×N1)  --Encode(M)-->  U (n×dG)                  M = ⟨φ_source, φ_target⟩, N1×dG
//	U, z      --Interaction--> GE (n×dG·dE)             GE[:, i·dG+j] = z[:, i] ⊙ U[:, j]
//	U, z      --Assemble-->    [U | GE | z] (n×(dG+dG·dE+dE))
//
// Column order is fixed: genotype block, interaction block (environment
// major, genotype minor), environment block. The estimator's sparse layers
// and the functional decoder both rely on this layout.
package design
