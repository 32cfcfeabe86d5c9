// Package funcge fits gene–environment (G×E) interaction models on
// functional representations of genetic variant data.
//
// 🚀 What is funcge?
//
//	Each subject's SNP signal over genomic location is turned into a genetic
//	variation function (GVF) by basis projection. The GVF is re-expressed in a
//	common B-spline target basis, crossed with environment covariates, and fed
//	to a sparse neural network. The learned per-basis weights decode back into
//	effect functions β_i(t) over genomic location.
//
// ✨ Pipeline, leaf-first:
//
//	basis/     - B-spline, Exponential, Fourier, Monomial, Power bases, evaluation & inner products
//	fd/        - functional objects (coefficients × basis) and their evaluation
//	gvf/       - basis projector: raw samples → per-subject coefficients (handles missing data)
//	design/    - cross-basis encoding U = C·M and the [U | U⊗z | z] design matrix
//	estimator/ - baseline OLS, sparse GE network, training, splits, metrics, grid search
//	decode/    - learned weights → {b_i} coefficient vectors and {β_i(t)} functions
//	snpge/     - the SNPGE and GridSNPGE orchestrators
//	simulate/  - synthetic GVF data for tests and examples
//
// Quick example:
//
//	data, _ := simulate.Generate(simulate.Config{N: 100, M: 30, Outcome: estimator.Continuous, Seed: 7})
//	out, err := snpge.SNPGE(data.Y, data.Z, data.Location, data.X, snpge.Params{
//		Common: snpge.Common{
//			Outcome: estimator.Continuous, Basis: basis.Bspline,
//			NBasis1: 5, Params1: basis.Params{Order: 4},
//			Bsplines: 5, NOrder1: 4,
//			Hidden: []int{8}, NumHidden: 1, Epochs: 50,
//		},
//		Hyper: estimator.Hyper{LearningRate1: 0.02, L: 0.01, LearningRate2: 0.035, L2: 0.01},
//	})
//
// All error kinds live in this package (errors.go) and are matched with errors.Is.
package funcge
