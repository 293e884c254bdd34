/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package smtptest

const defaultMessagesChannelSize = 10
