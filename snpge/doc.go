// Package snpge runs the functional G×E pipeline end to end.
//
// 🚀 Stages (single pass, the first failure aborts):
//
//	validate → project X on the source basis (gvf)
//	         → M = ⟨source, target⟩ (basis.InnerProduct)
//	         → U = C·M, design [U | z⊗U | z] (design)
//	         → least-squares baseline + network (estimator)
//	         → β_i(t) on the target B-spline basis (decode)
//
// SNPGE fits one hyperparameter point; GridSNPGE searches a grid of them.
// Both build the source basis and the target B-spline basis over
// [min(location), max(location)].
//
// ⚙️ Usage:
//
//	ds, _ := simulate.Generate(simulate.Config{N: 10, M: 30, Outcome: estimator.Continuous, Seed: 123})
//	out, err := snpge.SNPGE(ds.Y, ds.Z, ds.Location, ds.X, snpge.Params{
//		Common: snpge.Common{
//			Outcome: estimator.Continuous, Basis: basis.Bspline, NBasis1: 5,
//			Params1: basis.Params{Order: 4}, NumHidden: 1, Hidden: []int{2},
//			Epochs: 1, Bsplines: 5, NOrder1: 4,
//		},
//		Hyper: estimator.Hyper{LearningRate2: 0.035, L2: 0.01, LearningRate1: 0.02, L: 0.01},
//	})
//	// out.B["b0"], out.Beta["beta1(t)"], out.Curves (β_i at location)
package snpge
