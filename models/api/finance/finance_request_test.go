package financeapimodels

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"finance-flow-backend/models"
)

func validRequestData() FinanceRequestData {
	return FinanceRequestData{
		Description:   "Office supplies for Q1",
		VendorName:    "Acme Traders",
		BankAccount:   "123456789012",
		BankIfsc:      "HDFC0001234",
		Department:    "Operations",
		BaseAmount:    10000,
		GstApplicable: true,
		GstPercentage: 18,
		Currency:      "INR",
		PaymentType:   models.PaymentTypeRegular,
	}
}

func fieldMessages(t *testing.T, err error) map[string]string {
	t.Helper()
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	out := map[string]string{}
	for _, f := range vErr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestFinanceRequestValidation(t *testing.T) {
	t.Run(`valid payload`, func(t *testing.T) {
		require.Nil(t, validRequestData().Validate())
	})

	t.Run(`required fields`, func(t *testing.T) {
		data := validRequestData()
		data.Description = "  "
		data.VendorName = ""
		data.BaseAmount = 0
		fields := fieldMessages(t, data.Validate())
		require.Contains(t, fields, "description")
		require.Contains(t, fields, "vendor_name")
		require.Contains(t, fields, "base_amount")
	})

	t.Run(`ifsc format`, func(t *testing.T) {
		data := validRequestData()
		for _, bad := range []string{"HDFC1001234", "hdfc0001234", "HDF00012345", "HDFC000123"} {
			data.BankIfsc = bad
			fields := fieldMessages(t, data.Validate())
			require.Contains(t, fields, "bank_ifsc")
		}
		data.BankIfsc = "SBIN0004321"
		require.Nil(t, data.Validate())
		// optional when the payment needs no bank transfer
		data.BankIfsc = ""
		require.Nil(t, data.Validate())
	})

	t.Run(`bank account length`, func(t *testing.T) {
		data := validRequestData()
		data.BankAccount = "12345678"
		fields := fieldMessages(t, data.Validate())
		require.Contains(t, fields, "bank_account")

		data.BankAccount = strings.Repeat("1", 35)
		fields = fieldMessages(t, data.Validate())
		require.Contains(t, fields, "bank_account")
	})

	t.Run(`tax percentage bounds`, func(t *testing.T) {
		data := validRequestData()
		data.GstPercentage = 29
		fields := fieldMessages(t, data.Validate())
		require.Contains(t, fields, "gst_percentage")

		data = validRequestData()
		data.TdsApplicable = true
		data.TdsPercentage = 31
		fields = fieldMessages(t, data.Validate())
		require.Contains(t, fields, "tds_percentage")

		// percentages on disabled taxes are not checked
		data = validRequestData()
		data.GstApplicable = false
		data.GstPercentage = 99
		require.Nil(t, data.Validate())
	})

	t.Run(`currency and payment type`, func(t *testing.T) {
		data := validRequestData()
		data.Currency = "RUPEES"
		fields := fieldMessages(t, data.Validate())
		require.Contains(t, fields, "currency")

		data = validRequestData()
		data.PaymentType = "URGENT"
		fields = fieldMessages(t, data.Validate())
		require.Contains(t, fields, "payment_type")
	})
}

func TestDecisionValidation(t *testing.T) {
	t.Run(`approve without comments`, func(t *testing.T) {
		require.Nil(t, DecisionData{}.Validate(models.ActionApproved))
	})

	t.Run(`reject and send back need comments`, func(t *testing.T) {
		for _, action := range []models.ApprovalAction{models.ActionRejected, models.ActionSentBack} {
			fields := fieldMessages(t, DecisionData{Comments: " "}.Validate(action))
			require.Contains(t, fields, "comments")

			require.Nil(t, DecisionData{Comments: "missing invoice copy"}.Validate(action))
		}
	})

	t.Run(`comment length cap`, func(t *testing.T) {
		data := DecisionData{Comments: strings.Repeat("x", 2001)}
		fields := fieldMessages(t, data.Validate(models.ActionApproved))
		require.Contains(t, fields, "comments")
	})

	t.Run(`unknown action`, func(t *testing.T) {
		fields := fieldMessages(t, DecisionData{Comments: "ok"}.Validate("ESCALATE"))
		require.Contains(t, fields, "action")
	})
}

func TestAdminReviewValidation(t *testing.T) {
	t.Run(`decisions`, func(t *testing.T) {
		require.Nil(t, AdminReviewData{Decision: models.AdminDecisionApprove}.Validate())
		require.Nil(t, AdminReviewData{Decision: models.AdminDecisionAllowResubmission}.Validate())

		fields := fieldMessages(t, AdminReviewData{Decision: models.AdminDecisionReject}.Validate())
		require.Contains(t, fields, "comments")
		require.Nil(t, AdminReviewData{Decision: models.AdminDecisionReject, Comments: "duplicate request"}.Validate())

		fields = fieldMessages(t, AdminReviewData{Decision: "PARK"}.Validate())
		require.Contains(t, fields, "decision")
	})
}
