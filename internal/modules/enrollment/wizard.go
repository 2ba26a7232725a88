package enrollment

import (
	"drivingschool/internal/domain"
	"drivingschool/internal/pkg/validator"
)

// The wizard is a 4-step linear state machine. Forward transitions are gated
// by per-step validation; going backward never validates. Steps are clamped
// to [StepPersonal, StepPayment], so Next at the end and Previous at the
// start are no-ops.
const (
	StepPersonal  = 1
	StepTraining  = 2
	StepDocuments = 3
	StepPayment   = 4
)

const minPasswordLength = 8

// FieldErrors maps a failing field to its message. An empty map means the
// step is satisfied.
type FieldErrors map[string]string

// Wizard validates steps against the training-package catalogue.
type Wizard struct {
	packageCodes map[string]bool
}

func NewWizard(packageCodes []string) *Wizard {
	codes := make(map[string]bool, len(packageCodes))
	for _, c := range packageCodes {
		codes[c] = true
	}
	return &Wizard{packageCodes: codes}
}

// Validate checks one step of the form and reports every failing field.
func (w *Wizard) Validate(e *domain.Enrollment, step int) FieldErrors {
	errs := FieldErrors{}

	switch step {
	case StepPersonal:
		if e.FirstName == "" {
			errs["firstName"] = "Le prénom est requis"
		}
		if e.LastName == "" {
			errs["lastName"] = "Le nom est requis"
		}
		if e.Email == "" {
			errs["email"] = "L'email est requis"
		} else if !validator.Var(e.Email, "email") {
			errs["email"] = "Format d'email invalide"
		}
		if e.Phone == "" {
			errs["phone"] = "Le téléphone est requis"
		}
		if e.BirthDate == "" {
			errs["birthDate"] = "La date de naissance est requise"
		}
		if e.Address == "" {
			errs["address"] = "L'adresse est requise"
		}
		if e.Password == "" {
			errs["password"] = "Le mot de passe est requis"
		} else if len(e.Password) < minPasswordLength {
			errs["password"] = "Au moins 8 caractères"
		}
		if e.Password != e.ConfirmPassword {
			errs["confirmPassword"] = "Les mots de passe ne correspondent pas"
		}

	case StepTraining:
		switch e.LicenseType {
		case domain.LicenseB, domain.LicenseAccompanie, domain.LicenseMoto:
		default:
			errs["licenseType"] = "Choisissez un type de permis"
		}
		if e.TrainingPackage == "" || !w.packageCodes[e.TrainingPackage] {
			errs["trainingPackage"] = "Choisissez une formule"
		}

	case StepDocuments:
		if e.IdentityDoc == "" {
			errs["identity"] = "Pièce d'identité requise"
		}
		if e.AddressProofDoc == "" {
			errs["addressProof"] = "Justificatif de domicile requis"
		}
		if e.PhotoDoc == "" {
			errs["photo"] = "Photo d'identité requise"
		}
		if e.RoadSafetyDoc == "" {
			errs["roadSafety"] = "ASSR 2 requis"
		}

	case StepPayment:
		switch e.PaymentMethod {
		case domain.PaymentCard, domain.PaymentInstallments, domain.PaymentTransfer:
		default:
			errs["paymentMethod"] = "Choisissez un mode de paiement"
		}
		if !e.TermsAccepted {
			errs["agreeToTerms"] = "Acceptez les conditions"
		}
	}

	return errs
}

// ValidateAll re-checks the whole form. Drafts stay editable after a step
// has been passed, so submission cannot trust the earlier gates.
func (w *Wizard) ValidateAll(e *domain.Enrollment) FieldErrors {
	errs := FieldErrors{}
	for step := StepPersonal; step <= StepPayment; step++ {
		for field, msg := range w.Validate(e, step) {
			errs[field] = msg
		}
	}
	return errs
}

// Next advances the wizard one step when the current step validates.
// On failure the step is unchanged and the field errors come back.
func (w *Wizard) Next(e *domain.Enrollment) FieldErrors {
	errs := w.Validate(e, e.Step)
	if len(errs) > 0 {
		return errs
	}
	if e.Step < StepPayment {
		e.Step++
	}
	return nil
}

// Previous steps back without validating, clamped at the first step.
func (w *Wizard) Previous(e *domain.Enrollment) {
	if e.Step > StepPersonal {
		e.Step--
	}
}
