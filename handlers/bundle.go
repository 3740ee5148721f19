// File: lexaid/handlers/bundle.go
package handlers

import (
	userRepoPkg "lexaid/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	Auth          *AuthHandler
	Users         *UserHandler
	Admin         *AdminHandler
	Appointments  *AppointmentHandler
	Notifications *NotificationHandler
	Storage       *StorageHandler
	Meetings      *MeetingHandler
	QR            *QRHandler
}
