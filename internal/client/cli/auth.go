package cli

import (
	"context"
	"os"

	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/gateway"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/session"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/validation"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the registration fields, validates them locally and
// creates the account. Registration never signs the user in; on success the
// user is told to log in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	department, err := getSimpleText(a.reader, "Enter department (optional)", os.Stdout)
	if err != nil {
		return err
	}
	consent, err := getSimpleText(a.reader, "Accept the terms of service? (y/n)", os.Stdout)
	if err != nil {
		return err
	}
	accepted := consent == "y" || consent == "yes"

	if errs := validation.RegisterForm(email, fullName, department, accepted); !errs.Valid() {
		printlnFn(errs.First())
		return nil
	}

	a.session.OpenModal(session.ModalRegister, nil)
	if err := a.session.Register(ctx, gateway.RegisterRequest{
		Email:            email,
		FullName:         fullName,
		Department:       department,
		HasAcceptedTerms: accepted,
	}); err != nil {
		a.reportErr(err)
		return err
	}

	printlnFn("Success! You can now log in.")
	return nil
}

// Login prompts for credentials and authenticates. When the backend demands a
// two-factor step-up the session stays unauthenticated and the user is asked
// to enter the code via the 'code' command.
//
// The password byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if errs := validation.LoginForm(email, string(password)); !errs.Valid() {
		printlnFn(errs.First())
		return nil
	}

	a.session.OpenModal(session.ModalLogin, nil)
	if err := a.session.Login(ctx, email, string(password)); err != nil {
		a.reportErr(err)
		return err
	}

	if m := a.session.Modal(); m.Open && m.Type == session.ModalVerify2FA {
		printlnFn("Two-factor code required, run 'code' to finish signing in")
		return nil
	}

	printlnFn("Login successful")
	return nil
}

// Code completes a stepped-up login with the user's 6-digit authenticator
// code. Without a pending step-up there is nothing to complete.
func (a *App) Code(ctx context.Context) error {
	if m := a.session.Modal(); !m.Open || m.Type != session.ModalVerify2FA {
		printlnFn("No two-factor login pending")
		return nil
	}

	code, err := getSimpleText(a.reader, "Enter the 6-digit code", os.Stdout)
	if err != nil {
		return err
	}
	if errs := validation.Verify2FAForm(code); !errs.Valid() {
		printlnFn(errs.First())
		return nil
	}

	if err := a.session.Verify2FA(ctx, code); err != nil {
		a.reportErr(err)
		return err
	}

	printlnFn("Login successful")
	return nil
}

// Forgot requests a password reset for the given email.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if errs := validation.ForgotPasswordForm(email); !errs.Valid() {
		printlnFn(errs.First())
		return nil
	}

	a.session.OpenModal(session.ModalForgotPassword, nil)
	if err := a.session.ForgotPassword(ctx, email); err != nil {
		a.reportErr(err)
		return err
	}

	printlnFn("Check your inbox for the reset token, then run 'reset'")
	return nil
}

// Reset applies a password reset with the emailed token.
//
// Both password byte slices are securely wiped before returning.
func (a *App) Reset(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter reset token", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(os.Stdout, "Confirm new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if errs := validation.ResetPasswordForm(token, string(password), string(confirm)); !errs.Valid() {
		printlnFn(errs.First())
		return nil
	}

	if err := a.session.ResetPassword(ctx, gateway.ResetPasswordRequest{
		ResetToken:      token,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	}); err != nil {
		a.reportErr(err)
		return err
	}

	if notice := a.session.TakeNotice(); notice != "" {
		printlnFn(notice)
	}
	return nil
}

// Logout clears the persisted session. It cannot fail from the user's point
// of view.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out")
	return nil
}
