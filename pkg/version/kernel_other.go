//go:build !unix

package version

func kernel() string {
	return ""
}
