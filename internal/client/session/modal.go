package session

// ModalType enumerates the mutually exclusive auth UI flows.
type ModalType string

const (
	ModalRegister       ModalType = "REGISTER"
	ModalLogin          ModalType = "LOGIN"
	ModalVerify2FA      ModalType = "VERIFY_2FA"
	ModalForgotPassword ModalType = "FORGOT_PASSWORD"
	ModalResetPassword  ModalType = "RESET_PASSWORD"
	ModalUpdateProfile  ModalType = "UPDATE_PROFILE"
)

// Keys of the modal data bag used to pass context between flows.
const (
	// DataStepUpToken carries the interim credential from login to 2FA verify.
	DataStepUpToken = "token"
	// DataEmail carries the address from forgot-password to reset-password.
	DataEmail = "email"
)

// ModalState describes the single auth modal that may be open. At most one
// flow is open at a time; opening a new one replaces the previous state
// entirely (there is no modal stack).
type ModalState struct {
	Type    ModalType
	Open    bool
	Loading bool
	Err     string
	Data    map[string]string
}

// Value returns the named entry of the data bag, or "".
func (m ModalState) Value(key string) string {
	return m.Data[key]
}
