package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AnyUserName/imgdoc/internal/document"
	"github.com/AnyUserName/imgdoc/internal/profile"
	"github.com/spf13/cobra"
)

var (
	editOutput      string
	editProfile     string
	editResize      int
	editTrim        string
	editGrayscale   bool
	editRemoveAlpha bool
	editQuality     int
	editConvert     string
	editEagerJPEG   bool
)

var editCmd = &cobra.Command{
	Use:   "edit <image>",
	Short: "Edit a single image and save it",
	Long: `Opens an image, applies the requested edits in a fixed order
(profile, remove-alpha, trim, resize, grayscale, convert, compress) and
saves it.

--output may be a file path or a directory. Without it the image is
saved next to the source, with the extension of its final format.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editOutput, "output", "o", "", "output file or directory (default: next to the source)")
	editCmd.Flags().StringVarP(&editProfile, "profile", "p", "", "apply a named profile first ("+strings.Join(profile.Names(), ", ")+")")
	editCmd.Flags().IntVarP(&editResize, "resize", "r", 0, "resize ratio in percent")
	editCmd.Flags().StringVar(&editTrim, "trim", "", "crop region as x,y,w,h")
	editCmd.Flags().BoolVar(&editGrayscale, "grayscale", false, "convert to grayscale")
	editCmd.Flags().BoolVar(&editRemoveAlpha, "remove-alpha", false, "drop the alpha channel")
	editCmd.Flags().IntVarP(&editQuality, "quality", "q", 0, "compression quality 0-100")
	editCmd.Flags().StringVarP(&editConvert, "convert", "c", "", "target format (bmp, jpeg, jpg, png, webp)")
	editCmd.Flags().BoolVar(&editEagerJPEG, "eager-jpeg", false, "encode JPEG at compress time instead of at save")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	docs := document.NewDispatcher(document.Config{EagerJPEG: editEagerJPEG})

	doc, err := docs.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	if size, err := doc.Size(); err == nil {
		logVerbose("opened %s as %s (%dx%d)", args[0], doc.Format(), size.Width, size.Height)
	}

	if editProfile != "" {
		prof, ok := profile.Lookup(editProfile)
		if !ok {
			return fmt.Errorf("unknown profile %q (available: %s)", editProfile, strings.Join(profile.Names(), ", "))
		}
		if err := prof.Apply(doc); err != nil {
			return fmt.Errorf("profile %s: %w", prof.Name, err)
		}
		logVerbose("applied profile %s", prof.Name)
	}

	if editRemoveAlpha {
		if err := doc.RemoveAlpha(); err != nil {
			return fmt.Errorf("remove alpha: %w", err)
		}
	}
	if editTrim != "" {
		r, err := parseRect(editTrim)
		if err != nil {
			return err
		}
		size, err := doc.TrimRect(r)
		if err != nil {
			return fmt.Errorf("trim: %w", err)
		}
		logVerbose("trimmed to %dx%d", size.Width, size.Height)
	}
	if cmd.Flags().Changed("resize") {
		size, err := doc.Resize(editResize)
		if err != nil {
			return fmt.Errorf("resize: %w", err)
		}
		logVerbose("resized to %dx%d", size.Width, size.Height)
	}
	if editGrayscale {
		doc.Grayscale()
	}
	if editConvert != "" {
		to := document.ParseFormat(editConvert)
		if err := doc.Convert(to); err != nil {
			return fmt.Errorf("convert to %s: %w", to, err)
		}
		logVerbose("converted to %s", to)
	}
	if cmd.Flags().Changed("quality") {
		if err := doc.Compress(editQuality); err != nil {
			return fmt.Errorf("compress: %w", err)
		}
	}

	status, err := doc.Save(editOutput)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	printSaveStatus(status)
	return nil
}

// parseRect parses "x,y,w,h".
func parseRect(s string) (document.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return document.Rect{}, fmt.Errorf("trim %q: want x,y,w,h", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return document.Rect{}, fmt.Errorf("trim %q: %w", s, err)
		}
		v[i] = n
	}
	return document.Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}

func printSaveStatus(s document.SaveStatus) {
	fmt.Printf("  Output: %s\n", s.OutputPath)
	if s.AfterSize == nil {
		return
	}
	if ratio, ok := s.Ratio(); ok {
		fmt.Printf("  Size:   %s -> %s (%.1f%% of original)\n",
			formatBytes(*s.BeforeSize), formatBytes(*s.AfterSize), ratio*100)
		return
	}
	fmt.Printf("  Size:   %s\n", formatBytes(*s.AfterSize))
}
