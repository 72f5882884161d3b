// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package integrator

import (
	"math"

	"github.com/scottlawson/pathtracer/core/bsdf"
	"github.com/scottlawson/pathtracer/core/bxdf"
	"github.com/scottlawson/pathtracer/core/light"
	"github.com/scottlawson/pathtracer/core/shape"
	"github.com/scottlawson/pathtracer/r3"
)

// RNG is the source of uniform randomness the integrator needs: one
// float per BSDF lobe-selection draw, one per light-selection draw, one
// per Russian-roulette test, and 2D samples for direct lighting and
// BSDF sampling. *math/rand.Rand and core/sampler's *Independent and
// *Stratified all satisfy it.
type RNG interface {
	Float64() float64
}

// PowerHeuristic is the Veach power heuristic with beta=2, used to
// combine the light-sampling and BSDF-sampling strategies in one-sample
// MIS direct lighting: w(p, q) = p^2 / (p^2 + q^2).
func PowerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	if f+g == 0 {
		return 0
	}
	return (f * f) / (f*f + g*g)
}

// Result is the per-primary-ray estimate: the radiance estimate plus the
// first-hit AOVs the film pipeline accumulates separately from color.
type Result struct {
	L           r3.Vec
	Normal      r3.Vec
	Albedo      r3.Vec
	HitAnything bool
}

const shadowEpsilon = shape.Epsilon

// PathSample bundles the pre-drawn random dimensions for one primary
// path: the 2D BSDF-continuation sample, the 1D light-selection and 2D
// light-position samples for the first bounce's direct lighting, and a
// 1D Russian-roulette dimension. A Sampler hands all of them over up
// front so a stratified or low-discrepancy sequence keeps its dimension
// assignment; bounces past the first fall back to the plain RNG stream.
type PathSample struct {
	U2Dbsdf  [2]float64
	U1Dlight float64
	U2Dlight [2]float64
	U1Drr    float64
}

// Li estimates radiance along ray using up to maxDepth bounces, drawing
// every random dimension from rng. Callers holding a structured Sampler
// should prefer LiSampled, which treats the sampler's pre-drawn
// first-bounce dimensions as authoritative.
func Li(scene *Scene, ray shape.Ray, maxDepth int, rng RNG) Result {
	ps := PathSample{
		U2Dbsdf:  [2]float64{rng.Float64(), rng.Float64()},
		U1Dlight: rng.Float64(),
		U2Dlight: [2]float64{rng.Float64(), rng.Float64()},
		U1Drr:    rng.Float64(),
	}
	return LiSampled(scene, ray, maxDepth, ps, rng)
}

// LiSampled estimates radiance along ray using up to maxDepth bounces,
// following the teacher's recursive-tracePath structure turned
// iterative, with one-sample MIS direct lighting at every non-specular
// bounce and Russian roulette termination once bounce > 3. ps supplies
// the first bounce's random dimensions; subsequent bounces draw from
// rng. (ps.U1Drr is requested with the rest even though roulette never
// fires on the first bounce, so dimension assignment stays fixed.)
func LiSampled(scene *Scene, ray shape.Ray, maxDepth int, ps PathSample, rng RNG) Result {
	L := r3.Vec{}
	beta := r3.Vec{X: 1, Y: 1, Z: 1}
	specularBounce := false
	var result Result

	currentRay := ray
	for bounce := 0; bounce <= maxDepth; bounce++ {
		hit, hitShape, ok := scene.Accelerator.Nearest(currentRay, shadowEpsilon, math.MaxFloat64)
		if !ok {
			if bounce == 0 || specularBounce {
				for _, lt := range scene.Lights {
					L = L.Add(beta.Mul(lt.Le(currentRay.Direction)))
				}
			}
			break
		}

		if bounce == 0 {
			result.Normal = hit.ShadingNormal
			result.HitAnything = true
		}

		prim, known := scene.primitiveFor(hitShape)
		if !known {
			break
		}
		if bounce == 0 {
			result.Albedo = prim.Material.Albedo()
		}

		wo := hit.Wo
		if (bounce == 0 || specularBounce) && prim.AreaLight != nil {
			L = L.Add(beta.Mul(prim.AreaLight.EmittedAt(hit.GeometryNormal, wo)))
		}

		b := prim.Material.ComputeScattering(hit.GeometryNormal, hit.ShadingNormal, hit.Ss, hit.Ts, hit.UV, rng.Float64)

		uLight, u2Light := ps.U1Dlight, ps.U2Dlight
		u := r3.Point2{X: ps.U2Dbsdf[0], Y: ps.U2Dbsdf[1]}
		if bounce > 0 {
			uLight = rng.Float64()
			u2Light = [2]float64{rng.Float64(), rng.Float64()}
			u = r3.Point2{X: rng.Float64(), Y: rng.Float64()}
		}

		L = L.Add(beta.Mul(sampleOneLight(scene, hit, b, wo, uLight, u2Light, rng)))

		sample := b.SampleF(wo, bxdf.All, u)
		if sample.Pdf == 0 || sample.F.IsZero() {
			break
		}

		cosWi := math.Abs(sample.Wi.Dot(hit.ShadingNormal))
		beta = beta.Mul(sample.F).Muls(cosWi / sample.Pdf)
		specularBounce = sample.Flags.Matches(bxdf.Specular)

		currentRay = shape.Ray{Origin: hit.Point.Add(sample.Wi.Muls(shadowEpsilon)), Direction: sample.Wi}

		if bounce > 3 {
			q := math.Max(0.05, 1-luminance(beta))
			if rng.Float64() < q {
				break
			}
			beta = beta.Divs(1 - q)
		}
	}

	result.L = L
	return result
}

// luminance returns the Y (luminance) channel used by the Russian
// roulette termination probability, matching the spec's beta.y form
// rather than the 1-max(beta) alternative.
func luminance(c r3.Vec) float64 {
	return 0.2126*c.X + 0.7152*c.Y + 0.0722*c.Z
}

// sampleOneLight implements one-sample MIS direct lighting: pick one
// light uniformly (via the 1D sample uChoice), evaluate both the
// light-sampling and BSDF-sampling legs, and combine them with the
// power heuristic. The result is scaled by the number of lights since
// each call only samples one.
func sampleOneLight(scene *Scene, hit shape.Interaction, b *bsdf.BSDF, wo r3.Vec, uChoice float64, uLight [2]float64, rng RNG) r3.Vec {
	n := len(scene.Lights)
	if n == 0 {
		return r3.Vec{}
	}
	idx := int(uChoice * float64(n))
	if idx >= n {
		idx = n - 1
	}
	chosen := scene.Lights[idx]

	contribution := directLighting(scene, hit, b, wo, chosen, uLight, rng)
	return contribution.Muls(float64(n))
}

func directLighting(scene *Scene, hit shape.Interaction, b *bsdf.BSDF, wo r3.Vec, lt light.Light, uLight [2]float64, rng RNG) r3.Vec {
	ns := hit.ShadingNormal
	result := r3.Vec{}

	// Light-sampling leg.
	ls := lt.SampleLi(hit.Point, uLight)
	if ls.Pdf > 0 && !ls.Li.IsZero() {
		f := b.F(wo, ls.Wi, bxdf.All&^bxdf.Specular).Muls(math.Abs(ls.Wi.Dot(ns)))
		if !f.IsZero() {
			li := ls.Li
			if occluded(scene, hit.Point, ls.POnLight) {
				li = r3.Vec{}
			}
			if !li.IsZero() {
				if lt.IsDelta() {
					result = result.Add(f.Mul(li).Divs(ls.Pdf))
				} else {
					scatterPdf := b.Pdf(wo, ls.Wi, bxdf.All&^bxdf.Specular)
					weight := PowerHeuristic(1, ls.Pdf, 1, scatterPdf)
					result = result.Add(f.Mul(li).Muls(weight / ls.Pdf))
				}
			}
		}
	}

	// BSDF-sampling leg, skipped for delta lights (they have zero
	// measure and can never be hit by a scattered ray).
	if !lt.IsDelta() {
		u2 := r3.Point2{X: rng.Float64(), Y: rng.Float64()}
		bs := b.SampleF(wo, bxdf.All&^bxdf.Specular, u2)
		if bs.Pdf > 0 && !bs.F.IsZero() {
			f := bs.F.Muls(math.Abs(bs.Wi.Dot(ns)))
			scatterRay := shape.Ray{Origin: hit.Point.Add(bs.Wi.Muls(shadowEpsilon)), Direction: bs.Wi}
			bhit, bhitShape, bok := scene.Accelerator.Nearest(scatterRay, shadowEpsilon, math.MaxFloat64)

			var le r3.Vec
			lightPdf := 0.0
			if bok {
				if prim, known := scene.primitiveFor(bhitShape); known && prim.AreaLight != nil && lightsEqual(lt, prim.AreaLight) {
					le = prim.AreaLight.EmittedAt(bhit.GeometryNormal, bs.Wi.Muls(-1))
					lightPdf = prim.AreaLight.Shape.Pdf(hit.Point, bs.Wi)
				}
			} else {
				// Corrected: the BSDF-sampling leg must still pick up
				// environment emission on a miss, or an InfiniteArea
				// light can never be found by this strategy.
				le = lt.Le(bs.Wi)
				if !le.IsZero() {
					lightPdf = infiniteAreaPdf(lt, bs.Wi)
				}
			}

			if !le.IsZero() && lightPdf > 0 {
				weight := PowerHeuristic(1, bs.Pdf, 1, lightPdf)
				result = result.Add(f.Mul(le).Muls(weight / bs.Pdf))
			}
		}
	}

	return result
}

// lightsEqual reports whether prim's Area light is the same light
// instance sampleOneLight chose, used to decide whether a BSDF-sampled
// ray that hit an emissive shape hit the chosen light specifically
// (rather than some other, unrelated, emissive geometry).
func lightsEqual(chosen light.Light, candidate *light.Area) bool {
	area, ok := chosen.(light.Area)
	if !ok {
		return false
	}
	return area.Shape == candidate.Shape
}

// infiniteAreaPdf recovers the solid-angle pdf of direction wi under an
// InfiniteArea light's uniform-sphere sampling distribution, used by the
// BSDF-sampling leg's MIS weight. It recovers theta from wi in light
// space and applies the same 1/(2*pi^2*sin(theta)) formula SampleLi
// uses, so the two legs stay consistent.
func infiniteAreaPdf(lt light.Light, wi r3.Vec) float64 {
	env, ok := lt.(*light.InfiniteArea)
	if !ok {
		return 0
	}
	wLight := env.WorldToLight(wi).Unit()
	cosTheta := wLight.Y
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	if sinTheta == 0 {
		return 0
	}
	return 1 / (2 * math.Pi * math.Pi * sinTheta)
}

// occluded reports whether anything blocks the segment between from and
// to, using a shadow ray shortened just shy of the target distance to
// avoid self-intersection at the light end.
func occluded(scene *Scene, from, to r3.Point) bool {
	d := to.Sub(from)
	dist := d.Length()
	if dist <= shadowEpsilon {
		return false
	}
	wi := d.Divs(dist)
	r := shape.Ray{Origin: from.Add(wi.Muls(shadowEpsilon)), Direction: wi}
	return scene.Accelerator.AnyHit(r, shadowEpsilon, dist-2*shadowEpsilon)
}
