package forces

import "crowdsim/internal/crowd"

// c1 is the distance profile of the avoidance force: Cn0 at contact (a
// negative, hard-core value), zero at Beta, rising to the plateau Cr0 at
// NuDist, constant until Gamma, then decaying to zero at Epsilon. Linear
// between breakpoints, exactly zero from Epsilon outward.
func c1(r float64, p *crowd.Params) float64 {
	switch {
	case r < p.Beta:
		return p.Cn0 * (1 - r/p.Beta)
	case r < p.NuDist:
		return p.Cr0 * (r - p.Beta) / (p.NuDist - p.Beta)
	case r < p.Gamma:
		return p.Cr0
	case r < p.Epsilon:
		return p.Cr0 * (1 - (r-p.Gamma)/(p.Epsilon-p.Gamma))
	default:
		return 0
	}
}

// c2 is the angular profile of the avoidance force, symmetric about zero:
// plateau Cphi1 for |phi| < Phi1, dropping to Cphi2 by Phi2, constant until
// Phi3, then decaying to zero at Phi4.
func c2(phi float64, p *crowd.Params) float64 {
	if phi < 0 {
		phi = -phi
	}
	switch {
	case phi < p.Phi1:
		return p.Cphi1
	case phi < p.Phi2:
		return p.Cphi1 - (p.Cphi1-p.Cphi2)*(phi-p.Phi1)/(p.Phi2-p.Phi1)
	case phi < p.Phi3:
		return p.Cphi2
	case phi < p.Phi4:
		return p.Cphi2 * (1 - (phi-p.Phi3)/(p.Phi4-p.Phi3))
	default:
		return 0
	}
}

// h1 is the distance profile of the cohesion force: constant Hr0 up to Lam,
// linear decay to zero at Sigma.
func h1(r float64, p *crowd.Params) float64 {
	switch {
	case r < p.Lam:
		return p.Hr0
	case r < p.Sigma:
		return p.Hr0 * (1 - (r-p.Lam)/(p.Sigma-p.Lam))
	default:
		return 0
	}
}

// h2 is the two-level angular weight of the cohesion force: Hphi1 when the
// neighbor is within the aligned cone Phi1, Hphi2 otherwise.
func h2(phi float64, p *crowd.Params) float64 {
	if phi < 0 {
		phi = -phi
	}
	if phi <= p.Phi1 {
		return p.Hphi1
	}
	return p.Hphi2
}
