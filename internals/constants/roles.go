package constants

// Role dalam token admin backend.
const (
	RoleAdmin     = "admin"
	RoleCommittee = "committee" // panitia program, boleh menilai tapi tidak mengubah rubrik
	RoleOwner     = "owner"
)

var (
	AdminAndAbove = []string{
		RoleAdmin,
		RoleOwner,
	}

	CommitteeAndAbove = []string{
		RoleCommittee,
		RoleAdmin,
		RoleOwner,
	}
)
