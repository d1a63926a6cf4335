// compileinfoprint is imported by the alfafreq binaries for the side effect of
// printing the compileinfo to os.Stderr before any flag parsing happens.
package compileinfoprint

import "github.com/carbocation/alfafreq/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
