package dockerfile

import (
	"fmt"
	"strings"
)

// The package-manager dialect of a base image's distribution.
type PackageManager int

const (
	DNF PackageManager = iota
	Zypper
	Pacman
	APT
	APK
)

// Maps the lowercased pre-colon token of a base image reference to its
// package-manager dialect. The table is closed; anything else is an error.
var distros = map[string]PackageManager{
	"fedora":              DNF,
	"debian":              APT,
	"ubuntu":              APT,
	"opensuse/leap":       Zypper,
	"opensuse/tumbleweed": Zypper,
	"archlinux":           Pacman,
	"alpine":              APK,
}

// Resolves the package-manager dialect for a base image reference.
//
// The substring before the first ':' is lowercased and matched against the
// distro table. No match is an error carrying the raw reference.
func PackageManagerFor(base string) (PackageManager, error) {
	token, _, _ := strings.Cut(base, ":")
	pm, ok := distros[strings.ToLower(token)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownBase, base)
	}
	return pm, nil
}

// Returns the full-system update command.
func (pm PackageManager) upgrade() string {
	switch pm {
	case DNF:
		return "dnf upgrade -y"
	case Zypper:
		return "zypper update -y"
	case Pacman:
		return "pacman -Syu --noconfirm"
	case APT:
		return "apt update && apt upgrade -y"
	default:
		return "apk update"
	}
}

// Returns the non-interactive install command prefix.
func (pm PackageManager) installPrefix() string {
	switch pm {
	case DNF:
		return "dnf install -y"
	case Zypper:
		return "zypper install -y"
	case Pacman:
		return "pacman -S --noconfirm"
	case APT:
		return "apt install -y"
	default:
		return "apk add"
	}
}

// Returns a single install instruction for the given packages.
func (pm PackageManager) Install(packages []string) Run {
	return Run{Command: pm.installPrefix() + " " + strings.Join(packages, " ")}
}

// Returns the dialect-specific bootstrap instructions: a UTF-8 locale setup
// followed by passwordless sudo.
//
// Arch and Alpine ship UTF-8 capable environments by default, so their
// locale sequence is the env vars only.
func (pm PackageManager) bootstrap() []Instruction {
	result := []Instruction{
		Comment{Text: "Ensure UTF-8 Support"},
		Env{Key: "LANG", Value: "en_US.UTF-8"},
		Env{Key: "LANGUAGE", Value: "en_US:en"},
		Env{Key: "LC_ALL", Value: "en_US.UTF-8"},
	}

	switch pm {
	case DNF:
		result = append(result,
			pm.Install([]string{"glibc-locale-source"}),
			Run{Command: "localedef --force --inputfile=en_US --charmap=UTF-8 en_US.UTF-8"},
		)
	case Zypper:
		result = append(result,
			pm.Install([]string{"glibc-locale", "glibc-i18ndata"}),
		)
	case APT:
		result = append(result,
			pm.Install([]string{"locales"}),
			Arg{Key: "DEBIAN_FRONTEND", Value: "noninteractive"},
			Run{Command: "echo 'en_US.UTF-8 UTF-8' >> /etc/locale.gen"},
			Run{Command: "locale-gen"},
		)
	}

	return append(result,
		Comment{Text: "Installing sudo and allow sudo for anyone"},
		pm.Install([]string{"sudo"}),
		Run{Command: "echo 'ALL ALL = (ALL) NOPASSWD: ALL' >> /etc/sudoers"},
	)
}
