package hostid

import (
	"fmt"
	"os/user"
	"strconv"
)

// Numeric ids and names of the invoking host user.
type Identity struct {
	UID      uint32
	GID      uint32
	Username string
	Group    string
}

// Returns the identity of the current process owner.
//
// The primary group is resolved by id so the group name matches what the
// host's user database reports.
func Current() (Identity, error) {
	u, err := user.Current()
	if err != nil {
		return Identity{}, fmt.Errorf("looking up current user: %w", err)
	}

	uid, err := parseID(u.Uid)
	if err != nil {
		return Identity{}, fmt.Errorf("parsing uid %q: %w", u.Uid, err)
	}
	gid, err := parseID(u.Gid)
	if err != nil {
		return Identity{}, fmt.Errorf("parsing gid %q: %w", u.Gid, err)
	}

	g, err := user.LookupGroupId(u.Gid)
	if err != nil {
		return Identity{}, fmt.Errorf("looking up group %q: %w", u.Gid, err)
	}

	return Identity{
		UID:      uid,
		GID:      gid,
		Username: u.Username,
		Group:    g.Name,
	}, nil
}

// Parses a numeric user or group id.
func parseID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(id), nil
}
