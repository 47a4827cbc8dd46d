package domain

// Role mirrors the access-control contract's role enum.
type Role uint8

const (
	RoleProducer Role = iota
	RoleDistributor
	RoleRetailer
	RoleRegulator
	// RoleConsumer is the implicit default for any address without an explicit
	// assignment. It is never granted.
	RoleConsumer
)

// String is the one place the role-name list exists.
func (r Role) String() string {
	switch r {
	case RoleProducer:
		return "Producer"
	case RoleDistributor:
		return "Distributor"
	case RoleRetailer:
		return "Retailer"
	case RoleRegulator:
		return "Regulator"
	case RoleConsumer:
		return "Consumer"
	default:
		return "Unknown"
	}
}

// Grantable reports whether the role may be assigned explicitly.
func (r Role) Grantable() bool {
	return r < RoleConsumer
}

// ProductStatus mirrors the supply-chain contract's status enum.
type ProductStatus uint8

const (
	StatusCreated ProductStatus = iota
	StatusShipped
	StatusReceived
	StatusStored
	StatusDelivered
)

func (s ProductStatus) String() string {
	switch s {
	case StatusCreated:
		return "Created"
	case StatusShipped:
		return "Shipped"
	case StatusReceived:
		return "Received"
	case StatusStored:
		return "Stored"
	case StatusDelivered:
		return "Delivered"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is within the contract's status range.
func (s ProductStatus) Valid() bool {
	return s <= StatusDelivered
}

// VerificationType mirrors the supply-chain contract's verification enum.
type VerificationType uint8

const (
	VerificationQualityCheck VerificationType = iota
	VerificationRegulatoryApproval
	VerificationAuthenticity
	VerificationCompliance
)

func (v VerificationType) String() string {
	switch v {
	case VerificationQualityCheck:
		return "QualityCheck"
	case VerificationRegulatoryApproval:
		return "RegulatoryApproval"
	case VerificationAuthenticity:
		return "Authenticity"
	case VerificationCompliance:
		return "Compliance"
	default:
		return "Unknown"
	}
}

// ClampVerificationType coerces a raw ledger value to a known variant.
// Out-of-range values fall back to QualityCheck; the raw value should always
// be in range, this is a defensive clamp.
func ClampVerificationType(raw uint8) VerificationType {
	v := VerificationType(raw)
	if v > VerificationCompliance {
		return VerificationQualityCheck
	}
	return v
}

// Product is the ledger's product record. Core fields are immutable after
// registration; CurrentOwner and Status mutate on transfer, MetadataHash on
// verification.
type Product struct {
	ID           uint64        `json:"id"`
	Name         string        `json:"name"`
	BatchID      string        `json:"batchId"`
	Producer     string        `json:"producer"`
	CreatedAt    int64         `json:"createdAt"`
	Origin       string        `json:"origin"`
	MetadataHash string        `json:"metadataHash"`
	CurrentOwner string        `json:"currentOwner"`
	Status       ProductStatus `json:"status"`
	IsAuthentic  bool          `json:"isAuthentic"`
}

// ProductFilter narrows a product listing. The zero value lists everything;
// Role filters by the current owner's role.
type ProductFilter struct {
	Owner string
	Role  *Role
}

// Transfer is one entry of a product's append-only ownership history.
type Transfer struct {
	From            string `json:"from"`
	To              string `json:"to"`
	Timestamp       int64  `json:"timestamp"`
	ShipmentDetails string `json:"shipmentDetails"`
}

// Verification is one entry of a product's append-only verification history.
type Verification struct {
	Verifier  string           `json:"verifier"`
	Timestamp int64            `json:"timestamp"`
	Type      VerificationType `json:"type"`
	Result    uint64           `json:"result"`
	Notes     string           `json:"notes"`
}

// TxResult is the common confirmation data of every write.
type TxResult struct {
	TxHash      string `json:"transactionHash"`
	BlockNumber uint64 `json:"blockNumber"`
	GasUsed     uint64 `json:"gasUsed"`
}

// IDSource records how a registration result's product id was derived.
type IDSource string

const (
	// IDFromEvent: extracted from the ProductRegistered event in the receipt.
	IDFromEvent IDSource = "event"
	// IDFromFallback: recovered by re-reading the product count. Correct only
	// when registrations are strictly sequential; concurrent registrations can
	// make this id wrong, so callers can see the degraded confidence.
	IDFromFallback IDSource = "fallback"
)

// RegisterResult is the outcome of a product registration.
type RegisterResult struct {
	TxResult
	ProductID uint64   `json:"productId"`
	IDSource  IDSource `json:"idSource"`
}

// AuthenticityResult is the outcome of an authenticity verification.
type AuthenticityResult struct {
	TxResult
	IsValid bool `json:"isValid"`
}

// ComplianceResult is the outcome of a compliance check. AutoVerified reports
// whether the ledger flipped the product authentic as a side effect of this
// check, so callers can tell "I verified it" from "the system verified it".
type ComplianceResult struct {
	TxResult
	Compliant       bool   `json:"compliant"`
	CertificateHash string `json:"certificateHash"`
	IsAuthentic     bool   `json:"isAuthentic"`
	AutoVerified    bool   `json:"autoVerified"`
}
