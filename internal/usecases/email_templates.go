package usecases

const (
	TemplatePaymentConfirmation = "payment_confirmation"
	TemplatePaymentReceived     = "payment_received"
	TemplatePaymentFailedUser   = "payment_failed_user"
	TemplatePaymentFailedAdmin  = "payment_failed_admin"
	TemplateContractUploaded    = "contract_uploaded"
	TemplateContractAssigned    = "contract_assigned"
	TemplateUnderReview         = "under_review"
	TemplateReviewCompleted     = "review_completed"
	TemplateKYCSubmitted        = "kyc_submitted"
	TemplateKYCDecision         = "kyc_decision"
	TemplateContactMessage      = "contact_message"
	TemplateMagicLink           = "magic_link"
	TemplateVerifyEmail         = "verify_email"
	TemplatePasswordReset       = "password_reset"
	TemplatePasswordChanged     = "password_changed"
)

type emailTemplate struct {
	Subject    string
	Title      string
	Body       string
	ActionText string
	ActionURL  string
	Text       string
}

const emailLayout = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{ title | escape }}</title>
</head>
<body style="font-family: Poppins, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
    <h1 style="color: white; margin: 0; font-size: 28px;">LegalEase</h1>
  </div>
  <div style="background: #ffffff; padding: 30px; border-radius: 0 0 10px 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1);">
    <h2 style="color: #667eea; margin-top: 0;">{{ title | escape }}</h2>
    <div style="color: #555; font-size: 16px;">
      {{ content }}
    </div>
    {% if action_text != "" and action_url != "" %}
    <div style="margin: 30px 0; text-align: center;">
      <a href="{{ action_url }}" style="display: inline-block; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; font-weight: 600;">{{ action_text }}</a>
    </div>
    {% endif %}
    <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
    <p style="color: #888; font-size: 14px; margin: 0;">
      If you have any questions, please contact us at
      <a href="mailto:{{ contact_email }}" style="color: #667eea;">{{ contact_email }}</a>
    </p>
    <p style="color: #888; font-size: 12px; margin: 10px 0 0 0;">&copy; {{ year }} LegalEase. All rights reserved.</p>
  </div>
</body>
</html>`

var emailTemplates = map[string]emailTemplate{
	TemplatePaymentConfirmation: {
		Subject: "Payment Confirmed - LegalEase",
		Title:   "Payment Confirmed",
		Body: `<p>Dear {{ user_name | escape }},</p>
<p>Thank you for your payment! We have successfully received your payment of <strong>{{ amount }}</strong> for the contract review of <strong>"{{ contract_title | escape }}"</strong>.</p>
<p><strong>Payment Reference:</strong> {{ reference | escape }}</p>
<p>Your contract is now being processed and will be assigned to one of our licensed lawyers for review. You will receive another email once the contract has been assigned.</p>`,
		ActionText: "View Dashboard",
		ActionURL:  "{{ app_url }}/dashboard",
		Text: `Payment Confirmed

Dear {{ user_name }},

Thank you for your payment! We have successfully received your payment of {{ amount }} for the contract review of "{{ contract_title }}".

Payment Reference: {{ reference }}

Your contract is now being processed and will be assigned to one of our licensed lawyers for review.

View your dashboard: {{ app_url }}/dashboard`,
	},
	TemplatePaymentReceived: {
		Subject: "New Payment Received - LegalEase",
		Title:   "New Payment Received",
		Body: `<p>A payment of <strong>{{ amount }}</strong> was received from {{ user_name | escape }} ({{ user_email | escape }}).</p>
<p><strong>Contract:</strong> {{ contract_title | escape }}<br><strong>Tier:</strong> {{ tier_name | escape }}<br><strong>Reference:</strong> {{ reference | escape }}</p>
<p>The contract is ready for lawyer assignment once the document has been uploaded.</p>`,
		ActionText: "Open Admin Dashboard",
		ActionURL:  "{{ app_url }}/admin",
		Text: `New Payment Received

A payment of {{ amount }} was received from {{ user_name }} ({{ user_email }}).
Contract: {{ contract_title }}
Tier: {{ tier_name }}
Reference: {{ reference }}

{{ app_url }}/admin`,
	},
	TemplatePaymentFailedUser: {
		Subject: "Payment Failed - LegalEase",
		Title:   "Payment Failed",
		Body: `<p>Dear {{ user_name | escape }},</p>
<p>Unfortunately your payment for <strong>"{{ contract_title | escape }}"</strong> could not be completed.</p>
{% if reason != "" %}<p><strong>Reason:</strong> {{ reason | escape }}</p>{% endif %}
<p>No funds were captured. You can retry the payment from your dashboard.</p>`,
		ActionText: "Retry Payment",
		ActionURL:  "{{ app_url }}/dashboard",
		Text: `Payment Failed

Dear {{ user_name }},

Unfortunately your payment for "{{ contract_title }}" could not be completed.{% if reason != "" %}
Reason: {{ reason }}{% endif %}

You can retry the payment from your dashboard: {{ app_url }}/dashboard`,
	},
	TemplatePaymentFailedAdmin: {
		Subject: "Payment Failed - LegalEase",
		Title:   "Payment Failed",
		Body: `<p>A payment by {{ user_email | escape }} failed.</p>
<p><strong>Contract:</strong> {{ contract_title | escape }}<br><strong>Reference:</strong> {{ reference | escape }}{% if reason != "" %}<br><strong>Gateway response:</strong> {{ reason | escape }}{% endif %}</p>`,
		Text: `Payment Failed

A payment by {{ user_email }} failed.
Contract: {{ contract_title }}
Reference: {{ reference }}{% if reason != "" %}
Gateway response: {{ reason }}{% endif %}`,
	},
	TemplateContractUploaded: {
		Subject: "New Contract Uploaded - LegalEase",
		Title:   "New Contract Uploaded",
		Body: `<p>{{ user_name | escape }} ({{ user_email | escape }}) uploaded <strong>"{{ contract_title | escape }}"</strong> for the {{ tier_name | escape }} tier.</p>
<p>The contract is awaiting lawyer assignment.</p>`,
		ActionText: "Assign a Lawyer",
		ActionURL:  "{{ app_url }}/admin",
		Text: `New Contract Uploaded

{{ user_name }} ({{ user_email }}) uploaded "{{ contract_title }}" for the {{ tier_name }} tier.
The contract is awaiting lawyer assignment.

{{ app_url }}/admin`,
	},
	TemplateContractAssigned: {
		Subject: "New Contract Assigned - LegalEase",
		Title:   "New Contract Assigned",
		Body: `<p>Dear {{ lawyer_name | escape }},</p>
<p>A new contract has been assigned to you for review:</p>
<div style="background: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0;">
  <p style="margin: 0;"><strong>Contract Title:</strong> {{ contract_title | escape }}</p>
  <p style="margin: 5px 0 0 0;"><strong>Client:</strong> {{ user_name | escape }}</p>
  <p style="margin: 5px 0 0 0;"><strong>Pricing Tier:</strong> {{ tier_name | escape }}</p>
</div>
<p>Please log in to your lawyer dashboard to access the contract and begin the review process.</p>`,
		ActionText: "Review Contract",
		ActionURL:  "{{ app_url }}/lawyer",
		Text: `New Contract Assigned

Dear {{ lawyer_name }},

A new contract has been assigned to you for review:

Contract Title: {{ contract_title }}
Client: {{ user_name }}
Pricing Tier: {{ tier_name }}

Please log in to your lawyer dashboard to access the contract and begin the review process.

{{ app_url }}/lawyer`,
	},
	TemplateUnderReview: {
		Subject: "Contract Status Update: Under Review - LegalEase",
		Title:   "Contract Status Update",
		Body: `<p>Dear {{ user_name | escape }},</p>
<p>{{ lawyer_name | escape }} has started reviewing your contract <strong>"{{ contract_title | escape }}"</strong>.</p>
<div style="background: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0; text-align: center;">
  <p style="margin: 0; font-size: 18px; font-weight: 600; color: #667eea;">{{ status_label }}</p>
</div>
<p>You can check the current status and any updates in your dashboard.</p>`,
		ActionText: "View Dashboard",
		ActionURL:  "{{ app_url }}/dashboard",
		Text: `Contract Status Update: {{ status_label }}

Dear {{ user_name }},

{{ lawyer_name }} has started reviewing your contract "{{ contract_title }}".

{{ app_url }}/dashboard`,
	},
	TemplateReviewCompleted: {
		Subject: "Contract Review Completed - LegalEase",
		Title:   "Contract Review Completed",
		Body: `<p>Dear {{ user_name | escape }},</p>
<p>Great news! The review of your contract <strong>"{{ contract_title | escape }}"</strong> has been completed by {{ lawyer_name | escape }}.</p>
<p>The reviewed document is now available in your dashboard. You can download it and review the lawyer's feedback and recommendations.</p>`,
		ActionText: "Download Reviewed Document",
		ActionURL:  "{{ app_url }}/dashboard",
		Text: `Contract Review Completed

Dear {{ user_name }},

Great news! The review of your contract "{{ contract_title }}" has been completed by {{ lawyer_name }}.

View your dashboard: {{ app_url }}/dashboard`,
	},
	TemplateKYCSubmitted: {
		Subject: "New KYC Submission - LegalEase",
		Title:   "New KYC Submission",
		Body: `<p>{{ full_name | escape }} ({{ user_email | escape }}) submitted identity verification using a {{ id_type | escape }}.</p>
<p>Please review the submission in the admin dashboard.</p>`,
		ActionText: "Review Submission",
		ActionURL:  "{{ app_url }}/admin",
		Text: `New KYC Submission

{{ full_name }} ({{ user_email }}) submitted identity verification using a {{ id_type }}.

{{ app_url }}/admin`,
	},
	TemplateKYCDecision: {
		Subject: "Identity Verification {{ decision }} - LegalEase",
		Title:   "Identity Verification {{ decision }}",
		Body: `<p>Dear {{ user_name | escape }},</p>
{% if approved %}<p>Your identity verification has been approved. You can now purchase contract reviews and upload documents.</p>{% else %}<p>Your identity verification could not be approved.</p>
<p><strong>Reason:</strong> {{ reason | escape }}</p>
<p>You can correct the details and resubmit from the KYC page.</p>{% endif %}`,
		ActionText: "Go to Dashboard",
		ActionURL:  "{{ app_url }}/{% if approved %}dashboard{% else %}kyc{% endif %}",
		Text: `Identity Verification {{ decision }}

Dear {{ user_name }},

{% if approved %}Your identity verification has been approved.{% else %}Your identity verification could not be approved.
Reason: {{ reason }}
You can resubmit from {{ app_url }}/kyc{% endif %}`,
	},
	TemplateContactMessage: {
		Subject: "New Contact Message from {{ name }} - LegalEase",
		Title:   "New Contact Message",
		Body: `<p><strong>Name:</strong> {{ name | escape }}<br>
<strong>Email:</strong> {{ email | escape }}<br>
{% if company != "" %}<strong>Company:</strong> {{ company | escape }}<br>{% endif %}
{% if phone != "" %}<strong>Phone:</strong> {{ phone | escape }}<br>{% endif %}
{% if service != "" %}<strong>Service:</strong> {{ service | escape }}{% endif %}</p>
<div style="background: #f5f5f5; padding: 15px; border-radius: 5px; white-space: pre-wrap;">{{ message | escape }}</div>`,
		Text: `New Contact Message

Name: {{ name }}
Email: {{ email }}
Company: {{ company }}
Phone: {{ phone }}
Service: {{ service }}

{{ message }}`,
	},
	TemplateMagicLink: {
		Subject: "Your sign-in link - LegalEase",
		Title:   "Sign in to LegalEase",
		Body: `<p>Click the button below to sign in. The link expires in 15 minutes and can be used once.</p>
<p>If you did not request this link, you can ignore this email.</p>`,
		ActionText: "Sign In",
		ActionURL:  "{{ link }}",
		Text: `Sign in to LegalEase

Use this link to sign in (expires in 15 minutes): {{ link }}

If you did not request this link, you can ignore this email.`,
	},
	TemplateVerifyEmail: {
		Subject: "Verify your email - LegalEase",
		Title:   "Verify your email",
		Body: `<p>Welcome{% if user_name != "" %}, {{ user_name | escape }}{% endif %}! Please confirm your email address to finish setting up your account.</p>
<p>The link expires in 24 hours.</p>`,
		ActionText: "Verify Email",
		ActionURL:  "{{ link }}",
		Text: `Verify your email

Confirm your email address (expires in 24 hours): {{ link }}`,
	},
	TemplatePasswordReset: {
		Subject: "Reset your password - LegalEase",
		Title:   "Reset your password",
		Body: `<p>We received a request to reset your password. The link expires in 1 hour.</p>
<p>If you did not request a reset, you can ignore this email and your password will stay the same.</p>`,
		ActionText: "Reset Password",
		ActionURL:  "{{ link }}",
		Text: `Reset your password

Reset your password (expires in 1 hour): {{ link }}

If you did not request a reset, you can ignore this email.`,
	},
	TemplatePasswordChanged: {
		Subject: "Your password was changed - LegalEase",
		Title:   "Password changed",
		Body: `<p>Dear {{ user_name | escape }},</p>
<p>The password for your LegalEase account was just changed. If this was not you, contact us immediately.</p>`,
		Text: `Password changed

Dear {{ user_name }},

The password for your LegalEase account was just changed. If this was not you, contact us immediately.`,
	},
}
