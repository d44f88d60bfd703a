package dto

import "github.com/healthapp/healthcare-portal/internal/service"

// StatsResponse is the admin dashboard summary.
type StatsResponse struct {
	TotalUsers           int64                 `json:"totalUsers"`
	TotalAppointments    int64                 `json:"totalAppointments"`
	TotalPrescriptions   int64                 `json:"totalPrescriptions"`
	TotalRecords         int64                 `json:"totalRecords"`
	UsersByRole          map[string]int64      `json:"usersByRole"`
	AppointmentsByStatus map[string]int64      `json:"appointmentsByStatus"`
	RecentAppointments   []AppointmentResponse `json:"recentAppointments"`
}

// NewStatsResponse maps computed statistics.
func NewStatsResponse(s *service.Stats) StatsResponse {
	return StatsResponse{
		TotalUsers:           s.TotalUsers,
		TotalAppointments:    s.TotalAppointments,
		TotalPrescriptions:   s.TotalPrescriptions,
		TotalRecords:         s.TotalRecords,
		UsersByRole:          s.UsersByRole,
		AppointmentsByStatus: s.AppointmentsByStatus,
		RecentAppointments:   NewAppointmentResponses(s.RecentAppointments),
	}
}
