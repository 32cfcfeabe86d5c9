// Package basis builds finite function bases over a location interval and
// evaluates them.
//
// 🚀 What is a basis?
//
//	A set of functions φ_0..φ_{N-1} on [Lo, Hi]. A curve is represented by a
//	coefficient vector c with f(t) = Σ c_k φ_k(t). Five families are provided:
//	  • Bspline     - piecewise polynomials of a given order on equally spaced breaks
//	  • Exponential - exp(r_k·t) for a rate vector
//	  • Fourier     - constant + sine/cosine pairs for a period
//	  • Monomial    - t^e for non-negative integer exponents
//	  • Power       - t^e for real exponents
//
// ✨ Key operations:
//   - New / NewBspline / ...: validated constructors (Kind dispatch is exhaustive)
//   - (*Basis).EvalMatrix(locations, deriv): rows = locations, cols = basis functions
//   - InnerProduct(a, b, da, db): ∫ D^da φa_p · D^db φb_q over the shared interval
//   - Gram(b): InnerProduct(b, b, 0, 0)
//
// ⚙️ Usage:
//
//	src, _ := basis.NewBspline(0, 1, 5, 4)
//	dst, _ := basis.NewBspline(0, 1, 20, 4)
//	M, err := basis.InnerProduct(src, dst, 0, 0) // 5×20
//
// Quadrature is Gauss–Legendre applied piecewise between the union of both
// bases' breakpoints, with node doubling until two successive estimates agree.
// A Basis is immutable after construction.
package basis
