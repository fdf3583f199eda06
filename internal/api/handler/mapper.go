package handler

import "github.com/99minutos/payment-console/internal/core/domain"

// toDashboardResponse counts the payments that can still change status.
func toDashboardResponse(payments []domain.Payment, message string) dashboardResponse {
	if payments == nil {
		payments = []domain.Payment{}
	}
	open := 0
	for _, p := range payments {
		if !p.Status.Terminal() {
			open++
		}
	}
	return dashboardResponse{
		Payments: payments,
		Message:  message,
		Total:    len(payments),
		Open:     open,
	}
}

// toUsersResponse strips passwords before user records leave the process.
func toUsersResponse(records []domain.UserRecord) usersResponse {
	users := make([]userResponse, 0, len(records))
	for _, r := range records {
		users = append(users, userResponse{Username: r.Username, Role: r.Role})
	}
	return usersResponse{Users: users, Total: len(users)}
}
