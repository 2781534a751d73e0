package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/medisys/hospital-api/config"
	"github.com/medisys/hospital-api/internal/model"
	"github.com/medisys/hospital-api/internal/repository"
)

// Service sends transactional mail. When disabled it silently drops every
// message so callers never need to special-case it.
type Service struct {
	cfg        config.EmailConfig
	doctorRepo repository.DoctorRepository
}

func NewService(cfg config.EmailConfig, doctorRepo repository.DoctorRepository) *Service {
	return &Service{cfg: cfg, doctorRepo: doctorRepo}
}

// AppointmentBooked mails the attending doctor a booking notice.
func (s *Service) AppointmentBooked(ctx context.Context, apt *model.Appointment) error {
	if !s.cfg.Enabled {
		return nil
	}

	doctor, err := s.doctorRepo.Get(ctx, apt.DoctorID)
	if err != nil {
		return fmt.Errorf("failed to resolve doctor for notification: %w", err)
	}

	subject := fmt.Sprintf("New appointment on %s", apt.DateTime.Format("Mon, 02 Jan 2006 15:04"))
	body := fmt.Sprintf(
		"Dr. %s %s,\n\nAn appointment has been booked for %s.\nReason: %s\n",
		doctor.FirstName, doctor.LastName,
		apt.DateTime.Format("Monday, 02 January 2006 at 15:04"),
		apt.Reason,
	)

	return s.send(doctor.Email, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
