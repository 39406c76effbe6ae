package cli

import "strconv"

// NormalizeArgs rewrites "-s W H" and "--size W H" into "-s WxH" so the
// size can be given as two separate numbers. Anything after "--" is left
// untouched.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if (arg == "-s" || arg == "--size") && i+2 < len(args) &&
			isPositiveInt(args[i+1]) && isPositiveInt(args[i+2]) {
			out = append(out, arg, args[i+1]+"x"+args[i+2])
			i += 2
			continue
		}
		out = append(out, arg)
	}
	return out
}

func isPositiveInt(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}
