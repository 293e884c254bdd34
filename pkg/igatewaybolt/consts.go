/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 */

package igatewaybolt

import "io/fs"

const dataBucketName = "data"

const fileMode_rw_rw_rw_ = fs.FileMode(0666)
