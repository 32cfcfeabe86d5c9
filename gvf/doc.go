// Package gvf projects raw per-subject genetic signal onto a function basis,
// producing genetic variation functions (GVFs).
//
// 🚀 What it does:
//
//	Given locations t_1..t_m and a subjects×locations signal matrix X, each
//	subject's coefficients c solve the normal equations (BᵀB)c = Bᵀx with
//	B[j,k] = φ_k(t_j). NaN entries in X mark missing observations.
//
// ✨ Two paths:
//   - fully observed X: one shared B, one LU solve for all subjects at once
//   - any NaN: per-subject systems restricted to that subject's observed
//     locations, solved independently on a bounded worker pool
//
// ⚙️ Usage:
//
//	b, _ := basis.NewBspline(min, max, 5, 4)
//	curves, err := gvf.Project(location, X, b)
//	// curves.Coef() is subjects×5
//
// Both paths share one solver, so a subject with missing values gets exactly
// the coefficients it would get if projected alone on its observed points.
// A singular system (too few observed points for the basis size) fails with
// funcge.ErrSingularBasis.
package gvf
