package httpapi

import (
	"context"

	"github.com/dentchartzz/clinic-service/internal/patient"
)

// patientRecordsAdapter lets the appointment service write a booking's
// chief complaint back onto the patient record
type patientRecordsAdapter struct {
	service patient.ServiceInterface
}

func (a *patientRecordsAdapter) SetChiefComplaint(ctx context.Context, patientID, complaint string) error {
	_, err := a.service.UpdatePatient(ctx, patientID, patient.UpdatePatientRequest{
		ChiefComplaint: &complaint,
	})
	return err
}
