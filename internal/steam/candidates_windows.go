//go:build windows

package steam

const defaultMarker = "steam.exe"

func defaultCandidateRoots() []string {
	return []string{
		`C:\Program Files (x86)\Steam`,
		`C:\Program Files\Steam`,
		`D:\Steam`,
		`E:\Steam`,
		`D:\Program Files (x86)\Steam`,
		`E:\Program Files (x86)\Steam`,
	}
}
