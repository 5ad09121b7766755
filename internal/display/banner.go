package display

import (
	"fmt"
	"io"
	"os"

	"github.com/backmassage/webpbatch/internal/logging"
)

const bannerArt = ` __      __   _        ___       _       _
 \ \    / /__| |__ _ __| _ ) __ _| |_ __| |_
  \ \/\/ / -_) '_ \ '_ \ _ \/ _` + "`" + ` |  _/ _| ' \
   \_/\_/\___|_.__/ .__/___/\__,_|\__\__|_||_|
                  |_|
`

// PrintBanner prints the ASCII art banner to stdout; Magenta when the
// logger has colors enabled.
func PrintBanner(log *logging.Logger) {
	writeBanner(os.Stdout, log.ColorEnabled())
}

func writeBanner(w io.Writer, colored bool) {
	if colored {
		fmt.Fprint(w, logging.Magenta)
	}
	fmt.Fprint(w, bannerArt)
	if colored {
		fmt.Fprintln(w, logging.Reset)
	}
}
