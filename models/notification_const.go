package models

import "fmt"

type NotificationCode string

const (
	NotifyRequestSubmitted   NotificationCode = "NotifyRequestSubmitted"
	NotifyRequestResubmitted NotificationCode = "NotifyRequestResubmitted"
	NotifyApprovalPending    NotificationCode = "NotifyApprovalPending"
	NotifyRequestApproved    NotificationCode = "NotifyRequestApproved"
	NotifyRequestRejected    NotificationCode = "NotifyRequestRejected"
	NotifyRequestSentBack    NotificationCode = "NotifyRequestSentBack"
	NotifyRequestDisbursed   NotificationCode = "NotifyRequestDisbursed"
	NotifySLABreach          NotificationCode = "NotifySLABreach"
	NotifySLAWarning         NotificationCode = "NotifySLAWarning"
	NotifyAdminReview        NotificationCode = "NotifyAdminReview"
	NotifyNewUser            NotificationCode = "NotifyNewUser"
	NotifyPasswordReset      NotificationCode = "NotifyPasswordReset"
)

type notifyTpl struct {
	Title string
	Msg   string
}

var notifyCodeMap = map[NotificationCode]notifyTpl{
	NotifyRequestSubmitted:   {Title: "Request submitted", Msg: "Payment request %v has been submitted and awaits %v."},
	NotifyRequestResubmitted: {Title: "Request resubmitted", Msg: "Payment request %v has been resubmitted and awaits %v."},
	NotifyApprovalPending:    {Title: "Approval required", Msg: "Payment request %v is awaiting your action at the %v stage."},
	NotifyRequestApproved:    {Title: "Request approved", Msg: "Payment request %v was approved at the %v stage by %v."},
	NotifyRequestRejected:    {Title: "Request rejected", Msg: "Payment request %v was rejected at the %v stage by %v."},
	NotifyRequestSentBack:    {Title: "Request sent back", Msg: "Payment request %v was sent back for changes at the %v stage by %v."},
	NotifyRequestDisbursed:   {Title: "Payment disbursed", Msg: "Payment request %v has been disbursed."},
	NotifySLABreach:          {Title: "SLA breached", Msg: "Payment request %v has breached the SLA at the %v stage."},
	NotifySLAWarning:         {Title: "SLA warning", Msg: "Payment request %v is close to breaching the SLA at the %v stage."},
	NotifyAdminReview:        {Title: "Admin review required", Msg: "Payment request %v exhausted its resubmission limit and requires admin review."},
	NotifyNewUser:            {Title: "Account created", Msg: "An account has been created for you. Login: %v. The password was sent to your email."},
	NotifyPasswordReset:      {Title: "Password reset", Msg: "Your password has been reset. The new password was sent to your email."},
}

type NotificationData struct {
	Code  NotificationCode
	Title string
	Msg   string
}

func newNotification(code NotificationCode, args ...interface{}) NotificationData {
	tpl := notifyCodeMap[code]
	return NotificationData{
		Code:  code,
		Title: tpl.Title,
		Msg:   fmt.Sprintf(tpl.Msg, args...),
	}
}

func GetNotifySubmitted(refNumber string, level ApprovalLevel) NotificationData {
	return newNotification(NotifyRequestSubmitted, refNumber, level.ToHuman())
}

func GetNotifyResubmitted(refNumber string, level ApprovalLevel) NotificationData {
	return newNotification(NotifyRequestResubmitted, refNumber, level.ToHuman())
}

func GetNotifyApprovalPending(refNumber string, level ApprovalLevel) NotificationData {
	return newNotification(NotifyApprovalPending, refNumber, level.ToHuman())
}

func GetNotifyApproved(refNumber string, level ApprovalLevel, actorName string) NotificationData {
	return newNotification(NotifyRequestApproved, refNumber, level.ToHuman(), actorName)
}

func GetNotifyRejected(refNumber string, level ApprovalLevel, actorName string) NotificationData {
	return newNotification(NotifyRequestRejected, refNumber, level.ToHuman(), actorName)
}

func GetNotifySentBack(refNumber string, level ApprovalLevel, actorName string) NotificationData {
	return newNotification(NotifyRequestSentBack, refNumber, level.ToHuman(), actorName)
}

func GetNotifyDisbursed(refNumber string) NotificationData {
	return newNotification(NotifyRequestDisbursed, refNumber)
}

func GetNotifySLABreach(refNumber string, level ApprovalLevel) NotificationData {
	return newNotification(NotifySLABreach, refNumber, level.ToHuman())
}

func GetNotifySLAWarning(refNumber string, level ApprovalLevel) NotificationData {
	return newNotification(NotifySLAWarning, refNumber, level.ToHuman())
}

func GetNotifyAdminReview(refNumber string) NotificationData {
	return newNotification(NotifyAdminReview, refNumber)
}

func GetNotifyNewUser(login string) NotificationData {
	return newNotification(NotifyNewUser, login)
}

func GetNotifyPasswordReset() NotificationData {
	return newNotification(NotifyPasswordReset)
}

// Credential emails are built apart from the in-app notifications; the
// generated password goes to the mail channel only and never reaches the
// notification store or the push hub.
func GetNewUserCredentialsMail(login, password string) (subject, body string) {
	return "Account created", fmt.Sprintf("An account has been created for you. Login: %v, password: %v.", login, password)
}

func GetPasswordResetMail(password string) (subject, body string) {
	return "Password reset", fmt.Sprintf("Your new password is: %v.", password)
}
