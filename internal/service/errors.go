package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUserExist         = errors.New("用户已存在")
	ErrTweetNotFound     = errors.New("推文不存在")
	ErrCommentNotFound   = errors.New("评论不存在")
	ErrContentTooLong    = errors.New("内容超出长度限制")
	ErrFollowSelf        = errors.New("不能关注自己")
	ErrFollowExist       = errors.New("已经关注过了")
	ErrNotOwner          = errors.New("只能操作自己的内容")
	ErrLikeTargetInvalid = errors.New("点赞目标无效")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUserNotFound:      NotFound,
	ErrUserExist:         BadRequest,
	ErrTweetNotFound:     NotFound,
	ErrCommentNotFound:   NotFound,
	ErrContentTooLong:    BadRequest,
	ErrFollowSelf:        BadRequest,
	ErrFollowExist:       BadRequest,
	ErrNotOwner:          Unauthorized,
	ErrLikeTargetInvalid: BadRequest,
	UnExpectedError:      InternalServerError,
}
