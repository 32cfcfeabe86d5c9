// Package estimator fits models on an assembled G×E design.
//
// Two estimators share the same data:
//   - Linear: ordinary least squares with intercept and minimum-norm
//     coefficients (thin SVD), used as the baseline and as the starting point
//     of the network's sparse layers.
//   - Network: two one-to-one sparse layers over the genotype and
//     interaction blocks, dense ReLU hidden layers, one output unit.
//
// 🚀 Outcomes:
//
//	Continuous  y ∈ ℝ            MSE loss             R²
//	Binary      y ∈ {0, 1}       cross-entropy/logit  AUC, accuracy
//	Survival    (time, status)   Cox partial lik.     C-index, AUC at time t
//
// ⚙️ Training is full-batch Adam. Sparse weights use LearningRate1 and an L1
// proximal step of strength L; dense weights use LearningRate2 with L2 weight
// decay. Rows are split into train/test or train/validation/test by a seeded
// permutation, so a (Config, Hyper) pair always yields the same Result.
//
// GridSearch trains every point of LearningRate2 × L2 × LearningRate1 × L on
// a bounded worker pool and keeps the run with the lowest selection loss
// (validation part, or test part for two-way splits); ties go to the earliest
// grid point.
package estimator
