package mathutil

// Minimum sequence lengths for the estimators.
const (
	// minVarianceCount is the smallest count for a Bessel-corrected variance.
	minVarianceCount = 2

	// minRegressionPoints is the smallest number of points that defines a line.
	minRegressionPoints = 2
)
