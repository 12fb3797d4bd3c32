// Package domain defines the healer site's data model: services, bookings,
// testimonials, wellness tips and contact submissions, the rules that
// validate them, and the repository interfaces the storage layer implements.
package domain
