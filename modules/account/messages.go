package account

// Success messages returned in the envelope "msg" field.
const (
	msgSignUpVerifyEmail = "Account created. Please check your email for the verification code and confirm your account."
	msgSignUpConfirm     = "Account created. Please confirm your account using the confirmAccountManually API."
	msgAccountConfirmed  = "Account successfully confirmed!"
	msgSignedIn          = "User successfully signed in!"
	msgTokenRefreshed    = "Token refreshed successfully"
	msgSignedOut         = "User successfully signed out!"

	msgForgotPassword   = "Password reset initiated. Please check your email for the confirmation code."
	msgPasswordReset    = "Password has been sucessfully reset."
	msgPasswordChanged  = "Password has been successfully changed."
	msgResetCodeSent    = "Password reset code sent. Please check your email."
	msgPasswordResetOTP = "Password has been successfully reset."

	msgUserRetrieved       = "User information retrieved successfully"
	msgUserUpdated         = "User information updated successfully"
	msgUserDeleted         = "User deleted successfully"
	msgUploadURLGenerated  = "Upload URL generated successfully"
	msgPictureUpdated      = "Profile picture updated successfully"
	msgPictureURLGenerated = "Picture URL generated successfully"
)
