package pipeline

// bufferGrowthFactor is the capacity multiplier applied when a buffer fills.
const bufferGrowthFactor = 2
