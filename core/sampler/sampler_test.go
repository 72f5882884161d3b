// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package sampler

import "testing"

func TestIndependentProducesRequestedCount(t *testing.T) {
	s := NewIndependent(1)
	samples := s.SamplesPerPixel(3, 4, 16)
	if len(samples) != 16 {
		t.Fatalf("expected 16 samples, got %d", len(samples))
	}
}

func TestIndependentPFilmStaysWithinPixel(t *testing.T) {
	s := NewIndependent(2)
	samples := s.SamplesPerPixel(5, 9, 64)
	for _, sm := range samples {
		if sm.PFilm[0] < 5 || sm.PFilm[0] >= 6 || sm.PFilm[1] < 9 || sm.PFilm[1] >= 10 {
			t.Fatalf("PFilm sample %v escaped pixel (5,9)", sm.PFilm)
		}
	}
}

func TestIndependentCloneWithSameSeedReproducesStream(t *testing.T) {
	s := NewIndependent(42)
	clone := s.Clone(42)
	a := s.SamplesPerPixel(0, 0, 4)
	b := clone.(*Independent).SamplesPerPixel(0, 0, 4)
	same := true
	for i := range a {
		if a[i].PFilm != b[i].PFilm {
			same = false
		}
	}
	if !same {
		t.Fatalf("cloning with the same seed should reproduce the same stream")
	}
}

func TestStratifiedProducesRequestedCount(t *testing.T) {
	s := NewStratified(1)
	for _, spp := range []int{1, 4, 9, 16, 17, 100} {
		samples := s.SamplesPerPixel(0, 0, spp)
		if len(samples) != spp {
			t.Fatalf("spp=%d: expected %d samples, got %d", spp, spp, len(samples))
		}
	}
}

func TestStratifiedPFilmStaysWithinPixel(t *testing.T) {
	s := NewStratified(3)
	samples := s.SamplesPerPixel(2, 2, 25)
	for _, sm := range samples {
		if sm.PFilm[0] < 2 || sm.PFilm[0] >= 3 || sm.PFilm[1] < 2 || sm.PFilm[1] >= 3 {
			t.Fatalf("PFilm sample %v escaped pixel (2,2)", sm.PFilm)
		}
	}
}

func TestStratumGridNeverExceedsRequestedCount(t *testing.T) {
	for _, spp := range []int{1, 2, 3, 4, 5, 16, 17, 64} {
		nx, ny := stratumGrid(spp)
		if nx*ny > spp {
			t.Fatalf("spp=%d: grid %dx%d=%d exceeds spp", spp, nx, ny, nx*ny)
		}
	}
}
