package email

// VerifyEmailTemplate confirms a profile's email address
const VerifyEmailTemplate = `
<h2>Verify your email</h2>
<p>Hi {{.Name}},</p>
<p>Confirm the email address for your MyDayLogs account by clicking the link below:</p>
<p><a href="{{.VerifyURL}}">Verify email address</a></p>
<p>The link expires in 24 hours. If you did not create this account you can ignore this email.</p>
`

// PasswordResetTemplate carries a one-time reset link
const PasswordResetTemplate = `
<h2>Reset your password</h2>
<p>Hi {{.Name}},</p>
<p>We received a request to reset the password for your account. Click the link below to choose a new password:</p>
<p><a href="{{.ResetURL}}">Reset password</a></p>
<p>The link expires in 1 hour. If you did not request this, no action is needed.</p>
`

// AdminMessageTemplate wraps a free-form message sent from the back office
const AdminMessageTemplate = `
<h2>{{.Subject}}</h2>
<p>Hi {{.Name}},</p>
<div>{{.Body}}</div>
<p>— The MyDayLogs team</p>
`
