package reflecthost

import "math"

func math32FromBits(bits uint32) float32 { return math.Float32frombits(bits) }

func math64FromBits(bits uint64) float64 { return math.Float64frombits(bits) }
