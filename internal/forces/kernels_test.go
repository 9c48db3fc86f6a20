package forces

import (
	"math"
	"testing"

	"crowdsim/internal/crowd"
)

func TestC1Breakpoints(t *testing.T) {
	p := crowd.DefaultParams()

	if got := c1(0, &p); got != p.Cn0 {
		t.Errorf("c1(0) should be cn0=%f, got %f", p.Cn0, got)
	}
	if got := c1(p.Beta, &p); math.Abs(got) > 1e-12 {
		t.Errorf("c1(beta) should be 0, got %f", got)
	}
	if got := c1(p.NuDist, &p); math.Abs(got-p.Cr0) > 1e-12 {
		t.Errorf("c1(nu_dist) should be cr0=%f, got %f", p.Cr0, got)
	}
	if got := c1((p.NuDist+p.Gamma)/2, &p); got != p.Cr0 {
		t.Errorf("c1 should plateau at cr0 between nu_dist and gamma, got %f", got)
	}
	if got := c1(p.Epsilon, &p); got != 0 {
		t.Errorf("c1(epsilon) should be exactly 0, got %f", got)
	}
	if got := c1(p.Epsilon+10, &p); got != 0 {
		t.Errorf("c1 beyond epsilon should be exactly 0, got %f", got)
	}
}

func TestC1ApproachesCn0(t *testing.T) {
	p := crowd.DefaultParams()
	r := 1e-9
	if got := c1(r, &p); math.Abs(got-p.Cn0) > 1e-6 {
		t.Errorf("c1 near contact should approach cn0=%f, got %f", p.Cn0, got)
	}
}

func TestC2Profile(t *testing.T) {
	p := crowd.DefaultParams()

	if got := c2(0, &p); got != p.Cphi1 {
		t.Errorf("c2(0) should be cphi1, got %f", got)
	}
	if got := c2((p.Phi2+p.Phi3)/2, &p); got != p.Cphi2 {
		t.Errorf("c2 mid-plateau should be cphi2, got %f", got)
	}
	if got := c2(p.Phi4, &p); got != 0 {
		t.Errorf("c2(phi4) should be 0, got %f", got)
	}
	if got := c2(math.Pi, &p); got != 0 {
		t.Errorf("c2(pi) should be 0, got %f", got)
	}
}

func TestC2Symmetric(t *testing.T) {
	p := crowd.DefaultParams()
	for _, phi := range []float64{0.1, 0.7, 1.5, 2.4} {
		if c2(phi, &p) != c2(-phi, &p) {
			t.Errorf("c2 should be symmetric about 0 at phi=%f", phi)
		}
	}
}

func TestC2Monotonic(t *testing.T) {
	p := crowd.DefaultParams()
	prev := c2(0, &p)
	for phi := 0.01; phi <= math.Pi; phi += 0.01 {
		cur := c2(phi, &p)
		if cur > prev+1e-12 {
			t.Fatalf("c2 should decay monotonically, rose at phi=%f", phi)
		}
		prev = cur
	}
}

func TestH1Profile(t *testing.T) {
	p := crowd.DefaultParams()

	if got := h1(p.Lam/2, &p); got != p.Hr0 {
		t.Errorf("h1 inside lam should be hr0, got %f", got)
	}
	mid := (p.Lam + p.Sigma) / 2
	if got := h1(mid, &p); math.Abs(got-p.Hr0/2) > 1e-12 {
		t.Errorf("h1 at midpoint should be hr0/2, got %f", got)
	}
	if got := h1(p.Sigma, &p); got != 0 {
		t.Errorf("h1(sigma) should be exactly 0, got %f", got)
	}
}

func TestH2TwoLevel(t *testing.T) {
	p := crowd.DefaultParams()

	if got := h2(p.Phi1/2, &p); got != p.Hphi1 {
		t.Errorf("h2 aligned should be hphi1, got %f", got)
	}
	if got := h2(p.Phi1+0.01, &p); got != p.Hphi2 {
		t.Errorf("h2 misaligned should be hphi2, got %f", got)
	}
	if h2(1.0, &p) != h2(-1.0, &p) {
		t.Error("h2 should be symmetric about 0")
	}
}
