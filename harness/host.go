package harness

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Host describes the machine a sweep runs on.
type Host struct {
	GOOS       string   `json:"goos"`
	GOARCH     string   `json:"goarch"`
	NumCPU     int      `json:"num_cpu"`
	GOMAXPROCS int      `json:"gomaxprocs"`
	Features   []string `json:"features"`
}

// DetectHost reads the runtime's view of the machine and the vector
// extensions reported by the CPU.
func DetectHost() Host {
	return Host{
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		Features:   cpuFeatures(runtime.GOARCH),
	}
}

func cpuFeatures(arch string) []string {
	var flags []struct {
		name string
		has  bool
	}

	switch arch {
	case "amd64", "386":
		flags = []struct {
			name string
			has  bool
		}{
			{"sse2", cpu.X86.HasSSE2},
			{"sse4.1", cpu.X86.HasSSE41},
			{"sse4.2", cpu.X86.HasSSE42},
			{"avx", cpu.X86.HasAVX},
			{"avx2", cpu.X86.HasAVX2},
			{"fma", cpu.X86.HasFMA},
			{"avx512f", cpu.X86.HasAVX512F},
		}
	case "arm64":
		flags = []struct {
			name string
			has  bool
		}{
			{"fp", cpu.ARM64.HasFP},
			{"asimd", cpu.ARM64.HasASIMD},
			{"asimdhp", cpu.ARM64.HasASIMDHP},
			{"sve", cpu.ARM64.HasSVE},
			{"sve2", cpu.ARM64.HasSVE2},
		}
	}

	features := make([]string, 0, len(flags))
	for _, f := range flags {
		if f.has {
			features = append(features, f.name)
		}
	}

	return features
}
