// Package registration is the multi-step seller application: a Draft that is
// saved after every change, the per-step rules, and the Wizard that walks
// the steps and submits.
package registration

import (
	"negromart_seller/internal/models"
)

type Step int

const (
	StepBusiness Step = iota + 1
	StepProfile
	StepPayment
	StepReview
)

var stepNames = map[Step]string{
	StepBusiness: "business",
	StepProfile:  "profile",
	StepPayment:  "payment",
	StepReview:   "review",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// Slot names, as used in error maps and the multipart payload.
const (
	SlotStudentID      = "student_id"
	SlotGovernmentID   = "government_issued_id"
	SlotLicense        = "license"
	SlotProofOfAddress = "proof_of_address"
	SlotProfileImage   = "about.profile_image"
	SlotCoverImage     = "about.cover_image"
)

// AllSlots lists every file slot in display order.
var AllSlots = []string{SlotStudentID, SlotGovernmentID, SlotLicense, SlotProofOfAddress, SlotProfileImage, SlotCoverImage}

type About struct {
	Address      string          `json:"address"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	ProfileImage models.FileSlot `json:"profile_image"`
	CoverImage   models.FileSlot `json:"cover_image"`
	Website      string          `json:"website"`
	Facebook     string          `json:"facebook"`
	Instagram    string          `json:"instagram"`
	Twitter      string          `json:"twitter"`
	Bio          string          `json:"bio"`
}

// Draft is everything the seller typed so far. It is saved as JSON after
// each change; file slots keep only their names.
type Draft struct {
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	BusinessName string            `json:"business_name"`
	Email        string            `json:"email"`
	Contact      string            `json:"contact"`
	SellerType   models.SellerType `json:"seller_type"`

	StudentID      models.FileSlot `json:"student_id"`
	GovernmentID   models.FileSlot `json:"government_issued_id"`
	License        models.FileSlot `json:"license"`
	ProofOfAddress models.FileSlot `json:"proof_of_address"`

	About         About                `json:"about"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

// Slot returns a pointer to the named file slot, or nil for an unknown name.
func (d *Draft) Slot(name string) *models.FileSlot {
	switch name {
	case SlotStudentID:
		return &d.StudentID
	case SlotGovernmentID:
		return &d.GovernmentID
	case SlotLicense:
		return &d.License
	case SlotProofOfAddress:
		return &d.ProofOfAddress
	case SlotProfileImage:
		return &d.About.ProfileImage
	case SlotCoverImage:
		return &d.About.CoverImage
	default:
		return nil
	}
}

// IDSlot is the identity document the seller type asks for.
func (d *Draft) IDSlot() string {
	if d.SellerType == models.SellerTypeStudent {
		return SlotStudentID
	}
	return SlotGovernmentID
}

// NameOnlySlots lists slots whose name survived a restore without the bytes.
func (d *Draft) NameOnlySlots() []string {
	var out []string
	for _, name := range AllSlots {
		if d.Slot(name).State() == models.SlotNameOnly {
			out = append(out, name)
		}
	}
	return out
}

func (d *Draft) clone() Draft {
	cp := *d
	if d.About.Latitude != nil {
		lat := *d.About.Latitude
		cp.About.Latitude = &lat
	}
	if d.About.Longitude != nil {
		lng := *d.About.Longitude
		cp.About.Longitude = &lng
	}
	return cp
}
