package core

// Tier captures the device class a session runs on. It fixes the particle
// count for the whole session.
type Tier struct {
	Name          string
	ParticleCount int
	// ScaleFactor shrinks parametric shapes on constrained devices.
	ScaleFactor float32
	PointSize   float32
}

var (
	TierDesktop = Tier{Name: "desktop", ParticleCount: 15000, ScaleFactor: 1.0, PointSize: 0.25}
	TierMobile  = Tier{Name: "mobile", ParticleCount: 8000, ScaleFactor: 0.6, PointSize: 0.35}
)

// TierByName returns the named tier, or false when unknown.
func TierByName(name string) (Tier, bool) {
	switch name {
	case TierDesktop.Name:
		return TierDesktop, true
	case TierMobile.Name:
		return TierMobile, true
	}
	return Tier{}, false
}
