package compileinfo

import "testing"

func TestUserAgent(t *testing.T) {
	for _, v := range []struct {
		Info     CompileInfo
		Expected string
	}{
		{CompileInfo{Package: "github.com/carbocation/alfafreq/cmd/mafplot", Version: "v0.1.0", Commit: "3f2a9c1d0e"}, "mafplot/v0.1.0 (3f2a9c1)"},
		{CompileInfo{Package: "github.com/carbocation/alfafreq/cmd/crossfreq"}, "crossfreq/(devel)"},
		{CompileInfo{}, "alfafreq/(devel)"},
	} {
		if ua := v.Info.UserAgent(); ua != v.Expected {
			t.Errorf("Expected %q, got %q", v.Expected, ua)
		}
	}
}
