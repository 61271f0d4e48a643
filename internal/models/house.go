package models

// Resident classification for a unit.
const (
	ResidentOwner  = "propietario"
	ResidentTenant = "arrendatario"
)

// House represents one unit of the condominium registry.
// Houses are seeded by migration and only ever edited, never deleted.
type House struct {
	ID           EntityID `json:"id"`
	Number       string   `json:"number"`
	OwnerName    string   `json:"ownerName"`
	RUT          string   `json:"rut"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	HasParking   bool     `json:"hasParking"`
	ResidentType string   `json:"residentType"`
	// IsBoardMember grants the categorical exemption from the
	// "gasto comun" concept in the fee ledger.
	IsBoardMember bool `json:"isBoardMember"`
}
