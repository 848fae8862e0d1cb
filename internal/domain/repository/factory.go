package repository

// Factory describes access to the different domain repositories.
type Factory interface {
	Users() UserRepository
	Profiles() ProfileRepository
	Addresses() AddressRepository
	Orders() OrderRepository
	Serials() SerialRepository
	MugAssignments() MugAssignmentRepository
}
