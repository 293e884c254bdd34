/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package inotify

// Provide returns an SMTP notifier
func Provide(params ParamsType) INotifier {
	return &mailNotifier{params: params}
}

// ProvideLogNotifier returns a notifier that only logs
func ProvideLogNotifier() INotifier {
	return &logNotifier{}
}
