package domain

import "time"

type EnrollmentStatus string

const (
	EnrollmentDraft     EnrollmentStatus = "draft"
	EnrollmentSubmitted EnrollmentStatus = "submitted"
)

type LicenseType string

const (
	LicenseB          LicenseType = "permis-b"
	LicenseAccompanie LicenseType = "conduite-accompagnee"
	LicenseMoto       LicenseType = "permis-moto"
)

type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentInstallments PaymentMethod = "installments"
	PaymentTransfer     PaymentMethod = "transfer"
)

// DocumentKind names the four upload slots of the enrollment wizard.
type DocumentKind string

const (
	DocIdentity     DocumentKind = "identity"
	DocAddressProof DocumentKind = "address_proof"
	DocPhoto        DocumentKind = "photo"
	DocRoadSafety   DocumentKind = "road_safety"
)

func (k DocumentKind) Valid() bool {
	switch k {
	case DocIdentity, DocAddressProof, DocPhoto, DocRoadSafety:
		return true
	}
	return false
}

// Enrollment is a signup-wizard draft. It lives from wizard start until
// submission; field content is merged in step by step.
type Enrollment struct {
	ID        int64            `json:"id"`
	Reference string           `json:"reference"`
	Step      int              `json:"step"`
	Status    EnrollmentStatus `json:"status"`

	// Step 1: personal information
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	BirthDate       string `json:"birth_date"`
	Address         string `json:"address"`
	Password        string `json:"-"`
	ConfirmPassword string `json:"-"`

	// Step 2: training selection
	LicenseType     LicenseType `json:"license_type,omitempty"`
	TrainingPackage string      `json:"training_package,omitempty"`

	// Step 3: document slots (stored file references, presence only)
	IdentityDoc     string `json:"identity_doc,omitempty"`
	AddressProofDoc string `json:"address_proof_doc,omitempty"`
	PhotoDoc        string `json:"photo_doc,omitempty"`
	RoadSafetyDoc   string `json:"road_safety_doc,omitempty"`

	// Step 4: payment
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	TermsAccepted bool          `json:"terms_accepted"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

func (e *Enrollment) Document(kind DocumentKind) string {
	switch kind {
	case DocIdentity:
		return e.IdentityDoc
	case DocAddressProof:
		return e.AddressProofDoc
	case DocPhoto:
		return e.PhotoDoc
	case DocRoadSafety:
		return e.RoadSafetyDoc
	}
	return ""
}

func (e *Enrollment) SetDocument(kind DocumentKind, ref string) {
	switch kind {
	case DocIdentity:
		e.IdentityDoc = ref
	case DocAddressProof:
		e.AddressProofDoc = ref
	case DocPhoto:
		e.PhotoDoc = ref
	case DocRoadSafety:
		e.RoadSafetyDoc = ref
	}
}
