package http

// User-facing outcome messages. This is the single vocabulary of the API.
const (
	msgWelcome           = "Welcome to Vibefy"
	msgEmailInUse        = "The email you are trying is already in Use, Please try with some other Email"
	msgUsernameInUse     = "The username you are trying is already in Use, Please try with some other Username"
	msgMissingField      = "Email, username and password are required"
	msgPasswordTooLong   = "Password must be at most 72 bytes long"
	msgLoginSuccessful   = "Login Successful"
	msgIncorrectPassword = "Incorrect Password, Please try Again"
	msgUserNotFound      = "User not found, Please Try again"
	msgLoginFailed       = "An error occurred during login."
	msgNotLoggedIn       = "Please login and Try again"
	msgLoggedOut         = "Logged out"
	msgSongUploaded      = "Song Uploaded Successfully"
	msgUploadFailed      = "Upload failed: "
	msgFileRequired      = "A file is required in the \"file\" field"
	msgSongNotFound      = "Song not found"
	msgSomethingWrong    = "Sorry, there is some issue on our end please try again after sometime. "
	msgDatabaseError     = "Something went wrong on our end. Please try again later."
)
