// Package sensors links every decoder family into parse.DefaultRegistry.
package sensors

import (
	_ "github.com/bemasher/rtlwx/acurite"
	_ "github.com/bemasher/rtlwx/ambient"
	_ "github.com/bemasher/rtlwx/bresser"
	_ "github.com/bemasher/rtlwx/fineoffset"
	_ "github.com/bemasher/rtlwx/hideki"
	_ "github.com/bemasher/rtlwx/lacrosse"
	_ "github.com/bemasher/rtlwx/misc"
	_ "github.com/bemasher/rtlwx/oregon"
)
