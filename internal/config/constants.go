package config

// Fixed pipeline constants. These are deliberately not runtime-tunable:
// history buffers written with one set of tolerances are not meaningfully
// comparable under another.
const (
	DefaultWidth       = 1920
	DefaultHeight      = 864
	DefaultSequenceLen = 148
	DefaultFrameDelay  = 2

	// Projection planes used for depth linearization and position
	// reconstruction.
	NearPlane = 0.1
	FarPlane  = 100.0

	// Normalized depth at or above this value is sky/far-plane: the
	// reflection search is skipped and fresnel is forced to zero.
	SkyDepthThreshold = 0.9999

	// Primary sphere-trace march.
	MarchMaxSteps   = 100
	MarchMaxDist    = 100.0
	MarchSurfaceEps = 1e-3
	MarchNormalEps  = 0.01

	// Screen-space specular reflection search.
	ReflectStepBudget   = 100
	ReflectRefineBudget = 15
	ReflectThickness    = 0.05
	ReflectBias         = 1e-4
	ReflectMixWeight    = 0.7

	// Fresnel term.
	FresnelF0        = 0.04
	FresnelIntensity = 1.0

	// Motion vectors: two 10-bit quantized components in the packed
	// 24-bit RGB value, 511 meaning zero offset. Decoded components map
	// through a signed quadratic and scale to UV offsets.
	MotionScale = 0.1

	// Temporal accumulation.
	MaxHistoryFrames   = 32
	DepthTolerance     = 0.01
	VarianceClipK      = 1.5
	MomentAgeThreshold = 4
	DenoiseEps         = 1e-6

	// Spatial stage 1: bilateral kernel collapses to the center sample
	// once history age passes this cutoff.
	BilateralAgeCutoff = 10
	BilateralSigmaPos  = 1.0
	BilateralSigmaDep  = 0.005
)
