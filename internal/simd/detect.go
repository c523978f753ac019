package simd

import "github.com/klauspost/cpuid/v2"

// Features describes the vector unit of the running CPU.
type Features struct {
	Brand  string
	Lanes  int
	ISA    string
	Cores  int
	Vendor string
}

// Detect probes the CPU and picks the widest lane shape its vector unit handles natively.
func Detect() Features {
	f := Features{
		Brand:  cpuid.CPU.BrandName,
		Cores:  cpuid.CPU.PhysicalCores,
		Vendor: cpuid.CPU.VendorString,
	}
	f.Lanes, f.ISA = laneWidth(cpuid.CPU)
	return f
}

// DetectWidth returns the preferred lane count: 8 with AVX-512, 4 with AVX2, otherwise 2.
func DetectWidth() int {
	w, _ := laneWidth(cpuid.CPU)
	return w
}

func laneWidth(cpu cpuid.CPUInfo) (int, string) {
	switch {
	case cpu.Supports(cpuid.AVX512F, cpuid.AVX512DQ):
		return 8, "avx512"
	case cpu.Supports(cpuid.AVX2):
		return 4, "avx2"
	case cpu.Supports(cpuid.SSE2):
		return 2, "sse2"
	case cpu.Supports(cpuid.ASIMD):
		return 2, "neon"
	default:
		return 2, "generic"
	}
}

// IsWidth reports whether n is a supported lane count.
func IsWidth(n int) bool {
	switch n {
	case 2, 4, 8, 16:
		return true
	}
	return false
}
